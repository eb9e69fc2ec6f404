package shipment

import (
	"shipping/internal/pkg/errs"
)

// TagName is a named handling category attached to a shipment. Each tag
// carries a fixed handling instruction for the delivery partner; tags have
// no other state.
type TagName string

// The closed set of handling tags.
const (
	TagExpress       TagName = "express"
	TagFragile       TagName = "fragile"
	TagHeavy         TagName = "heavy"
	TagInternational TagName = "international"
	TagPerishable    TagName = "perishable"
)

// tagInstructions maps each tag to its fixed handling instruction.
var tagInstructions = map[TagName]string{
	TagExpress:       "Prioritize pickup and delivery over standard shipments",
	TagFragile:       "Handle with care, do not stack heavy items on top",
	TagHeavy:         "Use appropriate lifting equipment, two-person carry",
	TagInternational: "Customs documentation must accompany the package",
	TagPerishable:    "Deliver within the estimated window, keep away from heat",
}

// NewTagName validates a tag name against the closed tag vocabulary.
func NewTagName(name string) (TagName, error) {
	tag := TagName(name)
	if _, ok := tagInstructions[tag]; !ok {
		return "", errs.NewValueIsInvalidError("tag")
	}
	return tag, nil
}

// String returns the tag's name.
func (t TagName) String() string {
	return string(t)
}

// Instruction returns the fixed handling instruction for the tag.
func (t TagName) Instruction() string {
	return tagInstructions[t]
}

// Validate checks the tag belongs to the defined vocabulary.
func (t TagName) Validate() error {
	if _, ok := tagInstructions[t]; !ok {
		return errs.NewValueIsInvalidError("tag")
	}
	return nil
}
