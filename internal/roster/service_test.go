package roster

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestService(t *testing.T) {
	svc := NewService(squad())

	assert.Len(t, svc.All(), 4)
	assert.Len(t, svc.Active(), 3)

	p, ok := svc.Get(3)
	assert.True(t, ok)
	assert.Equal(t, "John", p.FirstName)

	_, ok = svc.Get(99)
	assert.False(t, ok)

	assert.True(t, svc.Exists(1))
	assert.False(t, svc.Exists(99))

	assert.Equal(t, "Aled Jones", svc.Name(4))
	assert.Equal(t, "", svc.Name(99))
}
