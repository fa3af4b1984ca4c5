package domain

// FilterState has one switch per zone; all four are always present.
type FilterState struct {
	QuickWins     bool `json:"QUICK_WINS"`
	MajorProjects bool `json:"MAJOR_PROJECTS"`
	FillIns       bool `json:"FILL_INS"`
	Ignore        bool `json:"IGNORE"`
}

func DefaultFilters() FilterState {
	return FilterState{QuickWins: true, MajorProjects: true, FillIns: true, Ignore: true}
}

func (f FilterState) Allows(zone Zone) bool {
	switch zone {
	case ZoneQuickWins:
		return f.QuickWins
	case ZoneMajorProjects:
		return f.MajorProjects
	case ZoneFillIns:
		return f.FillIns
	case ZoneIgnore:
		return f.Ignore
	default:
		return false
	}
}

func (f FilterState) Toggle(zone Zone) (FilterState, error) {
	if err := zone.Validate(); err != nil {
		return f, err
	}
	switch zone {
	case ZoneQuickWins:
		f.QuickWins = !f.QuickWins
	case ZoneMajorProjects:
		f.MajorProjects = !f.MajorProjects
	case ZoneFillIns:
		f.FillIns = !f.FillIns
	case ZoneIgnore:
		f.Ignore = !f.Ignore
	}
	return f, nil
}
