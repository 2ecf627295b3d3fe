// Package language tags message content with its display direction.
// The platform is Hebrew/English bilingual; clients render rtl content
// right-aligned without guessing themselves.
package language

import (
	"github.com/abadojack/whatlanggo"

	"mentconnect/domain"
)

// Direction detects the dominant script of the text and maps it to a display
// direction. Empty or undecidable content defaults to ltr.
func Direction(text string) domain.Direction {
	if text == "" {
		return domain.LTR
	}
	info := whatlanggo.Detect(text)
	if whatlanggo.Scripts[info.Script] == "Hebrew" || whatlanggo.Scripts[info.Script] == "Arabic" {
		return domain.RTL
	}
	return domain.LTR
}

// Code returns the ISO 639-3 code of the detected language ("heb", "eng").
// Unreliable detections come back empty.
func Code(text string) string {
	info := whatlanggo.Detect(text)
	if !info.IsReliable() {
		return ""
	}
	return info.Lang.Iso6393()
}
