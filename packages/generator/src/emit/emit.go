// Package emit contains the generation passes that turn resolved project
// data into Dart source blocks. Each emitter writes one self-contained block
// into an output.EmitterContext; the builder runs them in a fixed order so
// the artifact is byte-identical across runs.
package emit

import (
	"fmt"

	"langgen-go/packages/generator/src/config"
	"langgen-go/packages/generator/src/dart"
	"langgen-go/packages/generator/src/document"
	"langgen-go/packages/generator/src/output"
)

// Header emits the generated-file banner and the runtime import.
func Header(ctx *output.EmitterContext, cfg *config.GeneratorConfig) {
	ctx.Println("// GENERATED CODE - DO NOT MODIFY BY HAND")
	ctx.Println("// Regenerated on every langgen-go build pass; edits will be lost.")
	ctx.BlankLine()
	ctx.Println(fmt.Sprintf("import '%s';", cfg.RuntimeImport))
	ctx.BlankLine()
}

// sectionTypeNames derives the class name for every section, in document
// order. Distinct keys can normalize to the same name ("general" and
// "General", or "class" and "classSection"); that would produce duplicate
// Dart declarations, so a collision fails the derivation instead.
func sectionTypeNames(doc *document.Document) ([]string, error) {
	names := make([]string, 0, len(doc.Sections))
	seen := map[string]string{}
	for _, section := range doc.Sections {
		typeName, err := dart.SectionTypeName(section.Key, dart.ReservedWords)
		if err != nil {
			return nil, err
		}
		if prev, ok := seen[typeName]; ok {
			return nil, &dart.InvalidIdentifierError{
				Ident:  section.Key,
				Reason: fmt.Sprintf("normalizes to %s, already taken by section %q", typeName, prev),
			}
		}
		seen[typeName] = section.Key
		names = append(names, typeName)
	}
	return names, nil
}

// Sections emits one accessor class per section, in document order. Every
// getter reads the key from the active localization store and falls back to
// the default value captured at generation time, so the generated code is
// usable before any runtime update has been applied.
func Sections(ctx *output.EmitterContext, doc *document.Document) error {
	typeNames, err := sectionTypeNames(doc)
	if err != nil {
		return err
	}
	for i, section := range doc.Sections {
		typeName := typeNames[i]
		sectionLiteral, err := dart.SafeStringLiteral(section.Key)
		if err != nil {
			return err
		}

		ctx.Println(fmt.Sprintf("class %s {", typeName))
		ctx.IncIndent()
		for _, entry := range section.Entries {
			getter, err := dart.MemberName(entry.Key)
			if err != nil {
				return err
			}
			keyLiteral, err := dart.SafeStringLiteral(entry.Key)
			if err != nil {
				return err
			}
			valueLiteral, err := dart.SafeStringLiteral(entry.Value)
			if err != nil {
				return err
			}
			ctx.Println(fmt.Sprintf("String get %s => Lang.getText(%s, %s) ?? %s;",
				getter, sectionLiteral, keyLiteral, valueLiteral))
		}
		ctx.DecIndent()
		ctx.Println("}")
		ctx.BlankLine()
	}
	return nil
}

// Facade emits the aggregate Localization class: one default-constructed
// field per section, in document order. A document with zero sections still
// produces a valid, empty class.
func Facade(ctx *output.EmitterContext, doc *document.Document) error {
	typeNames, err := sectionTypeNames(doc)
	if err != nil {
		return err
	}
	ctx.Println("class Localization {")
	ctx.IncIndent()
	for _, typeName := range typeNames {
		ctx.Println(fmt.Sprintf("final %s %s = %s();", typeName, dart.FieldName(typeName), typeName))
	}
	ctx.DecIndent()
	ctx.Println("}")
	ctx.BlankLine()
	return nil
}

// Footer emits the facade instance the runtime layer consumes: config,
// default localization tree, language registry, bundled payloads, the
// initially-empty picked locale and the debug flag.
func Footer(ctx *output.EmitterContext, cfg *config.GeneratorConfig) {
	ctx.Println("final Lang lang = Lang(")
	ctx.IncIndent()
	ctx.Println("_config,")
	ctx.Println("Localization(),")
	ctx.Println("_languages,")
	ctx.Println("_bundledTranslations,")
	ctx.Println("'',")
	ctx.Println(fmt.Sprintf("%t,", cfg.Debug))
	ctx.DecIndent()
	ctx.Println(");")
}
