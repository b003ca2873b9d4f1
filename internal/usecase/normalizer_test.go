package usecase

import (
	"testing"
)

func TestNormalize(t *testing.T) {
	testCases := []struct {
		name  string
		input string
		opts  NormalizeOptions
		want  string
	}{
		{name: "empty input", input: "", want: ""},
		{name: "whitespace only", input: "   \t ", want: ""},
		{name: "strips accents", input: "Más Allá", want: "mas alla"},
		{name: "removes vintage year", input: "Château Margaux 2015", want: "chateau margaux"},
		{name: "removes 19xx year", input: "Vega Sicilia Unico 1998", want: "vega sicilia unico"},
		{name: "keeps non-year numbers", input: "19 Crimes", want: "19 crimes"},
		{name: "removes dotted NV marker", input: "Bollinger Special Cuvée N.V.", want: "bollinger special cuvee"},
		{name: "removes bare NV marker", input: "Krug Grande Cuvée NV", want: "krug grande cuvee"},
		{name: "collapses punctuation", input: "Côtes-du-Rhône", want: "cotes du rhone"},
		{name: "splits apostrophes", input: "L'Ermite", want: "l ermite"},
		{name: "translates rouge", input: "Château Musar Rouge", want: "chateau musar red"},
		{name: "translates blanc", input: "Sauvignon Blanc", want: "sauvignon white"},
		{name: "translates red blend", input: "Apothic Red Blend", want: "apothic red wine"},
		{name: "translates chained rouge blend", input: "Rouge Blend", want: "red wine"},
		{name: "translates dry", input: "Dr. Loosen Dry Riesling", want: "dr loosen trocken riesling"},
		{name: "translates tinto when descriptors kept", input: "Protos Tinto", want: "protos red"},
		{name: "keeps descriptors by default", input: "Muga Reserva 2019", want: "muga reserva"},
		{
			name:  "strips descriptors and appellation",
			input: "Chianti Classico Riserva D.O.C.G. 2018",
			opts:  NormalizeOptions{StripDescriptors: true},
			want:  "chianti",
		},
		{
			name:  "strips undotted docg",
			input: "Barolo DOCG",
			opts:  NormalizeOptions{StripDescriptors: true},
			want:  "barolo",
		},
		{
			name:  "strips vino de espana",
			input: "Protos Vino de España Tinto",
			opts:  NormalizeOptions{StripDescriptors: true},
			want:  "protos",
		},
		{
			name:  "keeps portuguese do",
			input: "Quinta do Crasto",
			opts:  NormalizeOptions{StripDescriptors: true},
			want:  "quinta do crasto",
		},
		{name: "folds sharp s", input: "Weißburgunder", want: "weissburgunder"},
		{name: "squeezes whitespace", input: "  Casa   del\tValle  ", want: "casa del valle"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := Normalize(tc.input, tc.opts)
			if got != tc.want {
				t.Errorf("Normalize(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"Château Margaux 2015",
		"Rouge Blend",
		"Rouge Red Blend N.V.",
		"Dry Riesling",
		"Chianti Classico Riserva D.O.C.G. 2018",
		"Côtes-du-Rhône Villages",
		"reserva_2015",
		"Tinto Rosado Blanco",
		"Vino d'Italia Rosso",
		"d.o.c. d.o. i.g.t",
		"Más Allá n-v",
		"",
	}

	for _, opts := range []NormalizeOptions{{}, {StripDescriptors: true}} {
		for _, input := range inputs {
			once := Normalize(input, opts)
			twice := Normalize(once, opts)
			if once != twice {
				t.Errorf("Normalize not idempotent for %q (strip=%v): %q then %q",
					input, opts.StripDescriptors, once, twice)
			}
		}
	}
}

func TestNormalizeAccentInvariance(t *testing.T) {
	pairs := [][2]string{
		{"Más Allá", "Mas Alla"},
		{"Grüner Veltliner", "Gruner Veltliner"},
		{"Mencía", "Mencia"},
		{"Crémant d'Alsace", "Cremant d'Alsace"},
	}

	for _, p := range pairs {
		if a, b := Normalize(p[0], NormalizeOptions{}), Normalize(p[1], NormalizeOptions{}); a != b {
			t.Errorf("Normalize(%q) = %q, Normalize(%q) = %q, want equal", p[0], a, p[1], b)
		}
	}
}
