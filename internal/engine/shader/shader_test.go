package shader

import (
	"strings"
	"testing"
)

func TestEmbeddedSources(t *testing.T) {
	for name, src := range map[string]string{"vertex": MeshVertex, "fragment": MeshFragment} {
		if !strings.HasPrefix(src, "#version 410 core") {
			t.Errorf("%s shader must target GL 4.1 core, starts with %q", name, firstLine(src))
		}
	}
	for _, attr := range []string{"aPosition", "aTexCoord", "aNormal"} {
		if !strings.Contains(MeshVertex, attr) {
			t.Errorf("vertex shader missing attribute %s", attr)
		}
	}
	if !strings.Contains(MeshFragment, "uniform vec4 uColor") {
		t.Error("fragment shader missing uColor uniform")
	}
}

func TestStageInterface(t *testing.T) {
	outs := declared(MeshVertex, "out")
	ins := declared(MeshFragment, "in")

	for name := range outs {
		if !ins[name] {
			t.Errorf("vertex output %s is not consumed by the fragment stage", name)
		}
	}
	for name := range ins {
		if !outs[name] {
			t.Errorf("fragment input %s is not written by the vertex stage", name)
		}
		if strings.Count(MeshFragment, name) < 2 {
			t.Errorf("fragment input %s is declared but never read", name)
		}
	}
}

func TestTrimNUL(t *testing.T) {
	tests := []struct {
		in   []byte
		want string
	}{
		{[]byte("error\x00"), "error"},
		{[]byte("error\x00garbage"), "error"},
		{[]byte("no terminator"), "no terminator"},
		{[]byte{0}, ""},
	}
	for _, tt := range tests {
		if got := trimNUL(tt.in); got != tt.want {
			t.Errorf("trimNUL(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

// declared returns the names of the plain qualifier variables in src,
// ignoring layout-qualified vertex attributes.
func declared(src, qualifier string) map[string]bool {
	names := make(map[string]bool)
	for _, line := range strings.Split(src, "\n") {
		fields := strings.Fields(strings.TrimSuffix(strings.TrimSpace(line), ";"))
		if len(fields) == 3 && fields[0] == qualifier {
			names[fields[2]] = true
		}
	}
	return names
}
