package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTranslateKnownDetail(t *testing.T) {
	assert.Equal(t, "休日には予約できません。別の日付をお選びください。",
		Translate("Cannot make a reservation on a holiday."))
	assert.Equal(t, "予約が見つかりませんでした。",
		Translate("Reservation not found"))
}

func TestTranslateUnknownDetailPassesThrough(t *testing.T) {
	assert.Equal(t, "some internal error", Translate("some internal error"))
	assert.Equal(t, "", Translate(""))
}
