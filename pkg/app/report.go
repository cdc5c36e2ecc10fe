package app

import (
	"strings"

	"tableflip.dev/outline/pkg/scene"
	"tableflip.dev/outline/pkg/tagreport"
)

// TagReport builds the tag report for the named document. Without types every
// known tag type is considered.
func (s *Service) TagReport(name string, types ...scene.TagType) (tagreport.Report, error) {
	doc, err := s.Document(name)
	if err != nil {
		return tagreport.Report{}, err
	}
	return tagreport.ByType(doc.Scenes, types...), nil
}

// ParseTagTypes converts comma separated or repeated type names.
func ParseTagTypes(raw []string) ([]scene.TagType, error) {
	var types []scene.TagType
	for _, value := range raw {
		for _, part := range strings.Split(value, ",") {
			if strings.TrimSpace(part) == "" {
				continue
			}
			t, err := scene.ParseTagType(part)
			if err != nil {
				return nil, err
			}
			types = append(types, t)
		}
	}
	return types, nil
}
