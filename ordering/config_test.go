package ordering

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name  string
		order []Order
		valid bool
	}{
		{name: "default", order: DefaultOrder, valid: true},
		{name: "empty", order: nil, valid: true},
		{name: "partial", order: []Order{BuildMethodOrder, PublicConstructor}, valid: true},
		{name: "unknown", order: []Order{PublicConstructor, "methods"}, valid: false},
		{name: "unclassified is internal", order: []Order{unclassified}, valid: false},
		{name: "duplicate", order: []Order{BuildMethodOrder, BuildMethodOrder}, valid: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Config{MemberOrdering: tt.order}.Validate()
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestDefaultConfigIsACopy(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MemberOrdering[0] = BuildMethodOrder
	assert.Equal(t, PublicConstructor, DefaultOrder[0])
	assert.NoError(t, DefaultConfig().Validate())
}

func TestEntityTypeString(t *testing.T) {
	assert.Equal(t, "GetterMethod", GetterMethod.String())
	assert.Equal(t, "Unknown", EntityType(42).String())
	assert.Equal(t, "Unknown", EntityType(-1).String())
}
