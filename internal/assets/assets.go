// Package assets holds the embedded link dictionaries and their loader.
package assets

import (
	"embed"
	"errors"
	"fmt"
	"strings"
)

//go:embed dicts/*
var dicts embed.FS

// Sentinel errors for asset loading.
var (
	ErrDictNotFound     = errors.New("dictionary not found")
	ErrInvalidAssetName = errors.New("invalid asset name")
)

// StandardDictName is the dictionary compiled in when no system
// dictionary is configured.
const StandardDictName = "standard"

// StandardDict returns the embedded standard link dictionary.
func StandardDict() string {
	content, err := dicts.ReadFile("dicts/" + StandardDictName + ".dict")
	if err != nil {
		// The file is embedded at build time; missing means a broken build.
		panic("assets: embedded standard dictionary missing: " + err.Error())
	}
	return string(content)
}

// LoadDict loads an embedded dictionary by name, without the .dict
// extension.
func LoadDict(name string) (string, error) {
	if err := ValidateAssetName(name); err != nil {
		return "", err
	}
	content, err := dicts.ReadFile("dicts/" + name + ".dict")
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrDictNotFound, name)
	}
	return string(content), nil
}

// ValidateAssetName rejects names that could escape the asset directory.
func ValidateAssetName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidAssetName)
	}
	if strings.ContainsAny(name, "/\\\x00") || strings.Contains(name, "..") {
		return fmt.Errorf("%w: %q", ErrInvalidAssetName, name)
	}
	return nil
}
