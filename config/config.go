/*
 * malis
 *
 * A tree-walking interpreter for a small Lox-family scripting language.
 */

// Package config holds malis's small global configuration: the product
// version and a handful of values that LoadFile overlays from a
// .malis.yaml file. The CLI driver loads that file at startup but reads
// none of these values back; its log level and log file come from the
// -loglevel/-logfile flags. Structured the way the teacher's config/config.go is (a
// plain map plus typed accessors), generalized from ECAL's
// JSON-file-driven stdlib plugin list to a YAML file the way the rest
// of the pack's tooling (gopkg.in/yaml.v3) favors over encoding/json
// for hand-edited config.
package config

import (
	"fmt"
	"os"
	"strconv"

	"devt.de/krotik/common/errorutil"
	"gopkg.in/yaml.v3"
)

/*
ProductVersion is the current version of malis.
*/
const ProductVersion = "0.1.0"

/*
Known configuration options for malis.
*/
const (
	LogLevel     = "LogLevel"
	LogFile      = "LogFile"
	HistoryLimit = "HistoryLimit"
)

/*
DefaultConfig is the default configuration.
*/
var DefaultConfig = map[string]interface{}{
	LogLevel:     "info",
	LogFile:      "",
	HistoryLimit: 500,
}

/*
Config is the actual config which is used.
*/
var Config map[string]interface{}

func init() {
	data := make(map[string]interface{})
	for k, v := range DefaultConfig {
		data[k] = v
	}
	Config = data
}

/*
LoadFile merges a .malis.yaml config file into Config, if it exists. A
missing file is not an error - .malis.yaml is entirely optional.
*/
func LoadFile(path string) error {
	content, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	} else if err != nil {
		return err
	}

	var overlay map[string]interface{}
	if err := yaml.Unmarshal(content, &overlay); err != nil {
		return fmt.Errorf("could not parse %s: %w", path, err)
	}

	for k, v := range overlay {
		Config[k] = v
	}

	return nil
}

// Helper functions
// ================

/*
Str reads a config value as a string value.
*/
func Str(key string) string {
	return fmt.Sprint(Config[key])
}

/*
Int reads a config value as an int value.
*/
func Int(key string) int {
	ret, err := strconv.ParseInt(fmt.Sprint(Config[key]), 10, 64)

	errorutil.AssertTrue(err == nil,
		fmt.Sprintf("could not parse config key %v: %v", key, err))

	return int(ret)
}

/*
Bool reads a config value as a boolean value.
*/
func Bool(key string) bool {
	ret, err := strconv.ParseBool(fmt.Sprint(Config[key]))

	errorutil.AssertTrue(err == nil,
		fmt.Sprintf("could not parse config key %v: %v", key, err))

	return ret
}
