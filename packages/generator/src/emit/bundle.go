package emit

import (
	"fmt"

	"langgen-go/packages/generator/src/dart"
	"langgen-go/packages/generator/src/language"
	"langgen-go/packages/generator/src/output"
)

// Bundle emits the offline translation snapshot: one map entry per language,
// keyed by locale, holding the raw payload exactly as retrieved. Payloads go
// into Dart raw triple-quoted strings so JSON escaping inside them survives
// untouched; content a raw string cannot represent falls back to a fully
// escaped literal.
func Bundle(ctx *output.EmitterContext, set language.BundledSet) error {
	ctx.Println("final Map<String, String> _bundledTranslations = <String, String>{")
	ctx.IncIndent()
	for _, bundled := range set {
		localeLiteral, err := dart.SafeStringLiteral(bundled.Locale)
		if err != nil {
			return err
		}
		ctx.Print(fmt.Sprintf("%s: ", localeLiteral))
		if raw, ok := dart.RawStringLiteral(bundled.Payload); ok {
			ctx.PrintVerbatim(raw)
		} else {
			payloadLiteral, err := dart.SafeStringLiteral(bundled.Payload)
			if err != nil {
				return err
			}
			ctx.Print(payloadLiteral)
		}
		ctx.Println(",")
	}
	ctx.DecIndent()
	ctx.Println("};")
	ctx.BlankLine()
	return nil
}
