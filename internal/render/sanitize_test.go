package render

import "testing"

func TestSanitize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty", "", ""},
		{"plain text is escaped", "Tom & Jerry <3", "Tom &amp; Jerry &lt;3"},
		{"allowed tags kept", "<p>Space <b>western</b> and <i>more</i></p>", "<p>Space <b>western</b> and <i>more</i></p>"},
		{"attributes dropped", `<p class="x" onclick="evil()">hi</p>`, "<p>hi</p>"},
		{"unknown tags removed, text kept", `<div><a href="http://x">link</a></div>`, "link"},
		{"script content dropped", "<p>a</p><script>alert(1)</script><p>b</p>", "<p>a</p><p>b</p>"},
		{"br normalized", "line<br/>next<BR>", "line<br>next<br>"},
		{"em and strong", "<em>e</em><strong>s</strong>", "<em>e</em><strong>s</strong>"},
		{"img removed", `<img src="x" onerror="alert(1)">caption`, "caption"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := string(Sanitize(tt.input)); got != tt.expected {
				t.Errorf("Sanitize(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}
