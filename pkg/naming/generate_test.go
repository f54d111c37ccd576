// SPDX-License-Identifier: MPL-2.0

package naming

import (
	"slices"
	"testing"

	"github.com/cmdspec/cmdspec/pkg/cmddef"
)

func defaultRules() Rules {
	return Rules{
		Casing:          cmddef.CasingKebab,
		NamePrefix:      cmddef.PrefixDoubleHyphen,
		ShortFormPrefix: cmddef.PrefixHyphen,
		AutoName:        true,
		AutoShortForm:   true,
	}
}

func TestGenerateName(t *testing.T) {
	t.Parallel()

	noAuto := defaultRules()
	noAuto.AutoName = false
	snake := defaultRules()
	snake.Casing = cmddef.CasingSnake
	slash := defaultRules()
	slash.NamePrefix = cmddef.PrefixSlash

	tests := []struct {
		name       string
		kind       cmddef.Kind
		identifier string
		explicit   string
		rules      Rules
		want       string
	}{
		{"command", cmddef.KindCommand, "Build", "", defaultRules(), "build"},
		{"command suffix stripped", cmddef.KindCommand, "BuildCommand", "", defaultRules(), "build"},
		{"multi word", cmddef.KindCommand, "BuildOutputPath", "", defaultRules(), "build-output-path"},
		{"snake", cmddef.KindArgument, "BuildOutputPath", "", snake, "build_output_path"},
		{"option prefixed", cmddef.KindOption, "OutputOption", "", defaultRules(), "--output"},
		{"option slash prefix", cmddef.KindOption, "Output", "", slash, "/output"},
		{"option raw prefix kept", cmddef.KindOption, "-x", "", defaultRules(), "-x"},
		{"explicit name verbatim", cmddef.KindCommand, "Build", "Compile", defaultRules(), "Compile"},
		{"explicit option gets prefix", cmddef.KindOption, "Output", "out", defaultRules(), "--out"},
		{"explicit option keeps prefix", cmddef.KindOption, "Output", "/out", defaultRules(), "/out"},
		{"auto off uses identifier", cmddef.KindCommand, "BuildCommand", "", noAuto, "BuildCommand"},
		{"auto off option still prefixed", cmddef.KindOption, "OutputOption", "", noAuto, "--OutputOption"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := GenerateName(tt.kind, tt.identifier, tt.explicit, tt.rules); got != tt.want {
				t.Errorf("GenerateName(%s, %q, %q) = %q, want %q", tt.kind, tt.identifier, tt.explicit, got, tt.want)
			}
		})
	}
}

func TestSuffixStrippingEquivalence(t *testing.T) {
	t.Parallel()

	for _, kind := range []cmddef.Kind{cmddef.KindCommand, cmddef.KindOption, cmddef.KindArgument, cmddef.KindDirective} {
		base := GenerateName(kind, "Build", "", defaultRules())
		for _, suffix := range Suffixes(kind) {
			if got := GenerateName(kind, "Build"+suffix, "", defaultRules()); got != base {
				t.Errorf("%s: Build%s -> %q, want %q", kind, suffix, got, base)
			}
		}
	}
}

func TestGenerateAliases(t *testing.T) {
	t.Parallel()

	noShort := defaultRules()
	noShort.AutoShortForm = false

	tests := []struct {
		name     string
		kind     cmddef.Kind
		genName  string
		explicit []string
		rules    Rules
		want     []string
	}{
		{"option short form", cmddef.KindOption, "--build-output-path", nil, defaultRules(), []string{"-bop"}},
		{"single word option", cmddef.KindOption, "--output", nil, defaultRules(), []string{"-o"}},
		{"command short form", cmddef.KindCommand, "build-output", nil, defaultRules(), []string{"bo"}},
		{"alias equal to name dropped", cmddef.KindCommand, "b", nil, defaultRules(), nil},
		{"arguments never aliased", cmddef.KindArgument, "source-path", nil, defaultRules(), nil},
		{"directives never aliased", cmddef.KindDirective, "debug", nil, defaultRules(), nil},
		{"short form disabled", cmddef.KindOption, "--output", nil, noShort, nil},
		{"explicit aliases win", cmddef.KindOption, "--output", []string{"o", "out", "/O"}, defaultRules(), []string{"-o", "--out", "/O"}},
		{"explicit empty suppresses", cmddef.KindOption, "--output", []string{}, defaultRules(), []string{}},
		{"explicit duplicate of name dropped", cmddef.KindCommand, "build", []string{"build", "b", "b"}, defaultRules(), []string{"b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := GenerateAliases(tt.kind, tt.genName, tt.explicit, tt.rules)
			if !slices.Equal(got, tt.want) {
				t.Errorf("GenerateAliases(%q) = %q, want %q", tt.genName, got, tt.want)
			}
			if tt.want != nil && got == nil {
				t.Error("explicit aliases must yield a non-nil slice")
			}
		})
	}
}

func TestGenerate(t *testing.T) {
	t.Parallel()

	c := &cmddef.Common{Identity: "app.Build.OutputPathOption"}
	got := Generate(cmddef.KindOption, c, defaultRules())
	if got.Name != "--output-path" {
		t.Errorf("Name = %q, want --output-path", got.Name)
	}
	if !slices.Equal(got.Aliases, []string{"-op"}) {
		t.Errorf("Aliases = %q, want [-op]", got.Aliases)
	}

	c = &cmddef.Common{Identity: "app.Build.Output", Name: "--dest"}
	got = Generate(cmddef.KindOption, c, defaultRules())
	if got.Name != "--dest" || !slices.Equal(got.Aliases, []string{"-d"}) {
		t.Errorf("explicit name = %q aliases %q, want --dest [-d]", got.Name, got.Aliases)
	}
}
