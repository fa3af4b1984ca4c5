package domain

import (
	"fmt"
	"strings"

	apperrors "banditboard/internal/platform/errors"
)

type MetricID string

const (
	MetricReach     MetricID = "reach"
	MetricResponses MetricID = "responses"
	MetricSales     MetricID = "sales"
)

// MetricIDs is the fixed slot order of a config.
var MetricIDs = []MetricID{MetricReach, MetricResponses, MetricSales}

func ParseMetricID(raw string) (MetricID, error) {
	id := MetricID(strings.ToLower(strings.TrimSpace(raw)))
	if id.Known() {
		return id, nil
	}
	return "", fmt.Errorf("%w: unknown metric %q", apperrors.ErrInvalidInput, raw)
}

func (id MetricID) Known() bool {
	for _, known := range MetricIDs {
		if id == known {
			return true
		}
	}
	return false
}

type Role string

const (
	RoleDenominator Role = "denominator"
	RoleNumerator   Role = "numerator"
	RoleNone        Role = "none"
)

func (r Role) Validate() error {
	switch r {
	case RoleDenominator, RoleNumerator, RoleNone:
		return nil
	default:
		return fmt.Errorf("%w: unknown role %q", apperrors.ErrInvalidInput, string(r))
	}
}

type Item struct {
	ID     MetricID `json:"id"`
	Label  string   `json:"label"`
	Helper string   `json:"helper"`
	Role   Role     `json:"role"`
}

// Config always holds one item per MetricIDs entry, in that order.
type Config []Item

func Defaults() Config {
	return Config{
		{ID: MetricReach, Label: "リーチ(表示)", Helper: "どれくらいの人に届いたか", Role: RoleDenominator},
		{ID: MetricResponses, Label: "反応数", Helper: "いいね・コメント・クリックの合計など", Role: RoleNumerator},
		{ID: MetricSales, Label: "売上/成約", Helper: "購入や問い合わせなど、ゴールにつながる数", Role: RoleNone},
	}
}

func defaultItem(id MetricID) Item {
	for _, item := range Defaults() {
		if item.ID == id {
			return item
		}
	}
	return Item{ID: id, Label: string(id), Role: RoleNone}
}

// Repair normalises a stored config: missing slots come from the defaults,
// unknown ids are dropped, invalid roles fall back to the slot default and
// only the first denominator survives. changed reports any difference.
func Repair(stored []Item) (Config, bool) {
	byID := make(map[MetricID]Item, len(stored))
	changed := len(stored) != len(MetricIDs)
	for i, item := range stored {
		if !item.ID.Known() {
			changed = true
			continue
		}
		if _, dup := byID[item.ID]; dup {
			changed = true
			continue
		}
		if i < len(MetricIDs) && MetricIDs[i] != item.ID {
			changed = true
		}
		byID[item.ID] = item
	}

	out := make(Config, 0, len(MetricIDs))
	seenDenominator := false
	for _, id := range MetricIDs {
		item, ok := byID[id]
		if !ok {
			item = defaultItem(id)
			changed = true
		}
		if item.Role.Validate() != nil {
			item.Role = defaultItem(id).Role
			changed = true
		}
		if strings.TrimSpace(item.Label) == "" {
			item.Label = defaultItem(id).Label
			changed = true
		}
		if item.Role == RoleDenominator {
			if seenDenominator {
				item.Role = RoleNone
				changed = true
			}
			seenDenominator = true
		}
		out = append(out, item)
	}
	return out, changed
}

// Patch is a partial update of one slot; nil fields are left alone.
type Patch struct {
	Label  *string
	Helper *string
	Role   *Role
}

// Apply updates one slot. Promoting a slot to denominator demotes any other
// denominator to none.
func (c Config) Apply(id MetricID, patch Patch) (Config, error) {
	idx := c.index(id)
	if idx < 0 {
		return c, fmt.Errorf("%w: unknown metric %q", apperrors.ErrInvalidInput, string(id))
	}
	out := make(Config, len(c))
	copy(out, c)
	item := out[idx]
	if patch.Label != nil {
		label := strings.TrimSpace(*patch.Label)
		if label == "" {
			return c, fmt.Errorf("%w: label is required", apperrors.ErrInvalidInput)
		}
		item.Label = label
	}
	if patch.Helper != nil {
		item.Helper = strings.TrimSpace(*patch.Helper)
	}
	if patch.Role != nil {
		if err := patch.Role.Validate(); err != nil {
			return c, err
		}
		item.Role = *patch.Role
		if item.Role == RoleDenominator {
			for i := range out {
				if i != idx && out[i].Role == RoleDenominator {
					out[i].Role = RoleNone
				}
			}
		}
	}
	out[idx] = item
	return out, nil
}

func (c Config) index(id MetricID) int {
	for i, item := range c {
		if item.ID == id {
			return i
		}
	}
	return -1
}

func (c Config) Item(id MetricID) (Item, bool) {
	if idx := c.index(id); idx >= 0 {
		return c[idx], true
	}
	return Item{}, false
}

func (c Config) Denominator() (Item, bool) {
	for _, item := range c {
		if item.Role == RoleDenominator {
			return item, true
		}
	}
	return Item{}, false
}

func (c Config) Numerators() []Item {
	var out []Item
	for _, item := range c {
		if item.Role == RoleNumerator {
			out = append(out, item)
		}
	}
	return out
}

// NumeratorKey is the metric trends are computed on.
func (c Config) NumeratorKey() MetricID {
	if nums := c.Numerators(); len(nums) > 0 {
		return nums[0].ID
	}
	return MetricResponses
}
