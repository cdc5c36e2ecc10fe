package scene

import (
	"fmt"
	"strings"
)

// TagType classifies production tags (cast, props, ...).
type TagType string

const (
	TagCast          TagType = "cast"
	TagProp          TagType = "prop"
	TagCostume       TagType = "costume"
	TagMakeup        TagType = "makeup"
	TagVFX           TagType = "vfx"
	TagSpecialEffect TagType = "sfx"
	TagAnimal        TagType = "animal"
	TagExtras        TagType = "extras"
	TagVehicle       TagType = "vehicle"
	TagStunt         TagType = "stunt"
	TagSound         TagType = "sound"
	TagMusic         TagType = "music"
	TagLocation      TagType = "location"
	TagGeneric       TagType = "generic"
)

var tagNames = map[TagType]string{
	TagCast:          "Cast",
	TagProp:          "Props",
	TagCostume:       "Costume",
	TagMakeup:        "Makeup",
	TagVFX:           "Visual Effects",
	TagSpecialEffect: "Special Effects",
	TagAnimal:        "Animals",
	TagExtras:        "Extras",
	TagVehicle:       "Vehicles",
	TagStunt:         "Stunts",
	TagSound:         "Sound",
	TagMusic:         "Music",
	TagLocation:      "Locations",
	TagGeneric:       "Generic",
}

// TagTypes returns every known tag type in report order.
func TagTypes() []TagType {
	return []TagType{
		TagCast,
		TagProp,
		TagCostume,
		TagMakeup,
		TagVFX,
		TagSpecialEffect,
		TagAnimal,
		TagExtras,
		TagVehicle,
		TagStunt,
		TagSound,
		TagMusic,
		TagLocation,
		TagGeneric,
	}
}

// ParseTagType converts raw text into a TagType.
func ParseTagType(raw string) (TagType, error) {
	t := TagType(strings.ToLower(strings.TrimSpace(raw)))
	if _, ok := tagNames[t]; ok {
		return t, nil
	}
	return TagGeneric, fmt.Errorf("scene: unknown tag type %q", raw)
}

// DisplayName returns the heading used for the tag type in reports.
func (t TagType) DisplayName() string {
	if name, ok := tagNames[t]; ok {
		return name
	}
	return string(t)
}

// Tag is a production tag found on one of the scene's lines.
type Tag struct {
	Type TagType `json:"type"`
	Name string  `json:"name"`
}
