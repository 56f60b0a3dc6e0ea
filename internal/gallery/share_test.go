package gallery

import "testing"

func TestShareURL(t *testing.T) {
	tests := []struct {
		origin string
		id     string
		want   string
	}{
		{"https://memories.example.edu", "3", "https://memories.example.edu/golden-moment/3"},
		{"https://memories.example.edu/", "3", "https://memories.example.edu/golden-moment/3"},
		{"http://localhost:8560", "uploaded_abc", "http://localhost:8560/golden-moment/uploaded_abc"},
	}
	for _, tt := range tests {
		if got := ShareURL(tt.origin, tt.id); got != tt.want {
			t.Errorf("ShareURL(%q, %q) = %q, want %q", tt.origin, tt.id, got, tt.want)
		}
	}
}

func TestShareText(t *testing.T) {
	m := Moment{Title: "Graduation Day Glory", Subtitle: "Four years of hard work finally paid off"}
	want := "Check out this golden moment: Graduation Day Glory - Four years of hard work finally paid off"
	if got := ShareText(m); got != want {
		t.Errorf("ShareText = %q, want %q", got, want)
	}
}
