package emit

import (
	"fmt"

	"langgen-go/packages/generator/src/dart"
	"langgen-go/packages/generator/src/language"
	"langgen-go/packages/generator/src/output"
)

// Credentials emits the project configuration literal. The API key is part
// of the runtime contract (over-the-air updates authenticate with it); the
// per-language content URLs are transient fetch endpoints and never appear.
func Credentials(ctx *output.EmitterContext, projectID, apiKey string) error {
	projectLiteral, err := dart.SafeStringLiteral(projectID)
	if err != nil {
		return err
	}
	keyLiteral, err := dart.SafeStringLiteral(apiKey)
	if err != nil {
		return err
	}
	ctx.Println(fmt.Sprintf("const LangConfig _config = LangConfig(%s, %s);", projectLiteral, keyLiteral))
	ctx.BlankLine()
	return nil
}

// Registry emits the static language registry in resolver order.
func Registry(ctx *output.EmitterContext, list language.List) error {
	ctx.Println("final List<LangLocale> _languages = <LangLocale>[")
	ctx.IncIndent()
	for _, entry := range list {
		localeLiteral, err := dart.SafeStringLiteral(entry.Locale)
		if err != nil {
			return err
		}
		nameLiteral, err := dart.SafeStringLiteral(entry.Name)
		if err != nil {
			return err
		}
		direction := entry.Direction
		if direction == "" {
			// a resolver that never sets the direction still yields valid Dart
			direction = language.DirectionLTR
		}
		ctx.Println(fmt.Sprintf("LangLocale(%d, %s, %s, LangTextDirection.%s, %t, %t),",
			entry.ID, localeLiteral, nameLiteral, direction, entry.IsDefault, entry.IsBestFit))
	}
	ctx.DecIndent()
	ctx.Println("];")
	ctx.BlankLine()
	return nil
}
