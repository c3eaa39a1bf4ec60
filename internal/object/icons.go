package object

import "github.com/tomz197/pinball/internal/pinball"

// iconGlyphs is the terminal icon atlas: a short label and colour per icon key.
var iconGlyphs = map[string]Glyph{
	"react":       {Label: "Re", Color: "\033[96m"},
	"node":        {Label: "No", Color: "\033[92m"},
	"express":     {Label: "Ex", Color: "\033[37m"},
	"mongodb":     {Label: "Mg", Color: "\033[32m"},
	"typescript":  {Label: "TS", Color: "\033[94m"},
	"javascript":  {Label: "JS", Color: "\033[93m"},
	"tailwindcss": {Label: "Tw", Color: "\033[36m"},
	"docker":      {Label: "Dk", Color: "\033[34m"},
	"github":      {Label: "GH", Color: "\033[97m"},
	"jest":        {Label: "Je", Color: "\033[91m"},
}

// Glyph is how an icon is drawn in a terminal cell run.
type Glyph struct {
	Label string
	Color string
}

// IconGlyph looks up an icon key, falling back to the default icon.
func IconGlyph(key string) Glyph {
	if g, ok := iconGlyphs[key]; ok {
		return g
	}
	return iconGlyphs[pinball.DefaultIconKey]
}
