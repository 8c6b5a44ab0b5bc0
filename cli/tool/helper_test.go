/*
 * malis
 *
 * A tree-walking interpreter for a small Lox-family scripting language.
 */

package tool

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"devt.de/krotik/common/stringutil"
)

func TestFillEnvRowRendersValuesLikePrint(t *testing.T) {
	row := fillEnvRow(nil, "x", 3.0)
	assert.Equal(t, []string{"x", "3", "", ""}, row)

	row = fillEnvRow(nil, "flag", true)
	assert.Equal(t, []string{"flag", "true", "", ""}, row)

	row = fillEnvRow(nil, "empty", nil)
	assert.Equal(t, []string{"empty", "nil", "", ""}, row)
}

func TestFillEnvRowWrapsLongValues(t *testing.T) {
	long := stringutil.GenerateRollingString("123 ", 100)
	row := fillEnvRow(nil, "s", long)
	assert.Equal(t, "s", row[0])
	assert.Greater(t, len(row), 4)
}
