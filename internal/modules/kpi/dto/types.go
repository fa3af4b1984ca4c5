package dto

type ItemOutput struct {
	ID     string
	Label  string
	Helper string
	Role   string
}

// ConfigOutput lists the slots in fixed order. Denominator is empty when no
// slot has that role.
type ConfigOutput struct {
	Items       []ItemOutput
	Denominator string
	Numerators  []string
}

// Label returns the configured label for a metric id, or the id itself.
func (c ConfigOutput) Label(id string) string {
	for _, item := range c.Items {
		if item.ID == id {
			return item.Label
		}
	}
	return id
}

type UpdateInput struct {
	ID     string
	Label  *string
	Helper *string
	Role   *string
}
