package scout_test

import (
	"testing"

	"github.com/fwojciec/scout"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScrapedCourse_Validate(t *testing.T) {
	t.Parallel()

	t.Run("requires title", func(t *testing.T) {
		t.Parallel()

		course := &scout.ScrapedCourse{URL: "https://example.com/c/1"}
		err := course.Validate()
		require.Error(t, err)
		assert.Equal(t, scout.EINVALID, scout.ErrorCode(err))
	})

	t.Run("requires URL", func(t *testing.T) {
		t.Parallel()

		course := &scout.ScrapedCourse{Title: "Go Course"}
		err := course.Validate()
		require.Error(t, err)
		assert.Equal(t, scout.EINVALID, scout.ErrorCode(err))
	})
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want scout.Level
	}{
		{"beginner", scout.LevelBeginner},
		{"Intermediate", scout.LevelIntermediate},
		{" ADVANCED ", scout.LevelAdvanced},
		{"expert", scout.LevelExpert},
		{"", scout.LevelBeginner},
		{"wizard", scout.LevelBeginner},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, scout.ParseLevel(tt.in))
		})
	}
}
