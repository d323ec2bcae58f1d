package config

import (
	"fmt"
	"strings"
)

type Catalog struct {
	DefaultLimit      int               `env:"CATALOG_DEFAULT_LIMIT" envDefault:"10"`
	MaxLimit          int               `env:"CATALOG_MAX_LIMIT" envDefault:"100"`
	ImageUpdatePolicy ImageUpdatePolicy `env:"CATALOG_IMAGE_UPDATE_POLICY" envDefault:"REJECT"`
}

// ImageUpdatePolicy decides what an update does with a payload that carries images.
type ImageUpdatePolicy uint8

const (
	// ImageUpdatePolicyReject keeps images immutable after create and refuses
	// update payloads that try to change them.
	ImageUpdatePolicyReject ImageUpdatePolicy = iota
	// ImageUpdatePolicyReplace swaps the whole image set inside the update transaction.
	ImageUpdatePolicyReplace
)

func (p ImageUpdatePolicy) String() string {
	return []string{"REJECT", "REPLACE"}[p]
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (p *ImageUpdatePolicy) UnmarshalText(text []byte) error {
	switch strings.ToUpper(string(text)) {
	case "REJECT":
		*p = ImageUpdatePolicyReject
	case "REPLACE":
		*p = ImageUpdatePolicyReplace
	default:
		return fmt.Errorf("unknown image update policy: %s", text)
	}
	return nil
}

func (p ImageUpdatePolicy) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}
