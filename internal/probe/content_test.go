package probe

import "testing"

func TestInspectContent(t *testing.T) {
	cases := []struct {
		name     string
		body     string
		password bool
		iframe   bool
	}{
		{
			name: "plain page",
			body: "<html><body><p>welcome</p></body></html>",
		},
		{
			name:     "login form",
			body:     `<form><input type="text" name="user"><input type="password" name="pw"></form>`,
			password: true,
		},
		{
			name:   "embedded frame",
			body:   `<div><iframe src="https://tracker.example"></iframe></div>`,
			iframe: true,
		},
		{
			name:     "both signals",
			body:     `<input type='password'><iframe></iframe>`,
			password: true,
			iframe:   true,
		},
		{
			name: "password mentioned in text only",
			body: `<p>enter your password on the next page</p><input type="text">`,
		},
		{
			name: "empty body",
			body: "",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			facts := InspectContent(tc.body)
			if facts.HasPasswordInput != tc.password {
				t.Errorf("HasPasswordInput = %v, want %v", facts.HasPasswordInput, tc.password)
			}
			if facts.HasIframe != tc.iframe {
				t.Errorf("HasIframe = %v, want %v", facts.HasIframe, tc.iframe)
			}
		})
	}
}
