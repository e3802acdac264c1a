package options

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type target struct {
	order []string
}

func TestApply_Order(t *testing.T) {
	tg := &target{}

	err := Apply[*target](tg,
		NoError(func(t *target) { t.order = append(t.order, "a") }),
		nil,
		New(func(t *target) error { t.order = append(t.order, "b"); return nil }),
	)
	require.NoError(t, err)
	require.Equal(t, []string{"a", "b"}, tg.order)
}

func TestApply_StopsOnError(t *testing.T) {
	tg := &target{}
	boom := errors.New("boom")

	err := Apply[*target](tg,
		New(func(*target) error { return boom }),
		NoError(func(t *target) { t.order = append(t.order, "never") }),
	)
	require.ErrorIs(t, err, boom)
	require.Empty(t, tg.order)
}
