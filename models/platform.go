package models

import "fmt"

// Platform is the target social network for a post.
type Platform string

const (
	PlatformInstagram Platform = "Instagram"
	PlatformTwitter   Platform = "Twitter"
)

// ParsePlatform validates a raw platform value.
func ParsePlatform(s string) (Platform, error) {
	switch Platform(s) {
	case PlatformInstagram, PlatformTwitter:
		return Platform(s), nil
	default:
		return "", fmt.Errorf("unknown platform: %q", s)
	}
}

// HumorType is a stylistic modifier applied to generated content.
type HumorType string

const (
	HumorInformative HumorType = "Informative"
	HumorFunny       HumorType = "Funny"
	HumorPersuasive  HumorType = "Persuasive"
	HumorSarcastic   HumorType = "Sarcastic"
	HumorNormal      HumorType = "Normal"
	HumorHappy       HumorType = "Happy"
)

// AllHumorTypes lists every supported humor type in display order.
var AllHumorTypes = []HumorType{
	HumorInformative,
	HumorFunny,
	HumorPersuasive,
	HumorSarcastic,
	HumorNormal,
	HumorHappy,
}

// ParseHumorTypes validates a raw humor selection. At least one value is
// required and every value must come from the fixed enumeration.
func ParseHumorTypes(raw []string) ([]HumorType, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("select at least one humor type")
	}
	out := make([]HumorType, 0, len(raw))
	for _, s := range raw {
		found := false
		for _, h := range AllHumorTypes {
			if HumorType(s) == h {
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("unknown humor type: %q", s)
		}
		out = append(out, HumorType(s))
	}
	return out, nil
}
