package validation

import "testing"

func TestValidImageContentType(t *testing.T) {
	accepted := []string{"image/png", "image/jpeg", "image/jpg", "image/gif", "image/webp", " IMAGE/PNG "}
	for _, ct := range accepted {
		if !ValidImageContentType(ct) {
			t.Errorf("Expected %q to be accepted", ct)
		}
	}
	rejected := []string{"image/bmp", "image/tiff", "application/pdf", "text/html", ""}
	for _, ct := range rejected {
		if ValidImageContentType(ct) {
			t.Errorf("Expected %q to be rejected", ct)
		}
	}
}

func TestValidTagName(t *testing.T) {
	if ValidTagName("   ") {
		t.Error("Blank name should be invalid")
	}
	if !ValidTagName(" modern ") {
		t.Error("Non-blank name should be valid")
	}
}

func TestSanitizeString(t *testing.T) {
	if got := SanitizeString("  hello\x00world  "); got != "helloworld" {
		t.Errorf("Unexpected sanitized value %q", got)
	}
}
