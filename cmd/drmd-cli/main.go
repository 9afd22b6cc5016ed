package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/goliatone/go-drmd/pkg/codec"
	"github.com/goliatone/go-drmd/pkg/document"
	"github.com/goliatone/go-drmd/pkg/orchestrator"
	"github.com/goliatone/go-drmd/pkg/validate"
)

func main() {
	input := flag.String("input", "", "extraction JSON or previously exported XML document")
	output := flag.String("output", "", "output file (stdout if empty)")
	rendererName := flag.String("renderer", "xml", "output renderer (xml or summary)")
	interactive := flag.Bool("interactive", false, "prompt for missing mandatory fields before export")
	allowInvalid := flag.Bool("allow-invalid", false, "render XML even when validation reports errors")
	flag.Parse()

	if *input == "" {
		log.Fatalf("an -input file is required")
	}

	raw, err := os.ReadFile(*input)
	if err != nil {
		log.Fatalf("read input: %v", err)
	}

	ctx := context.Background()
	gen := orchestrator.New()

	req := orchestrator.Request{
		Renderer:     *rendererName,
		AllowInvalid: *allowInvalid || *interactive,
	}
	if strings.HasSuffix(strings.ToLower(*input), ".xml") {
		doc, err := codec.NewDecoder().Decode(raw)
		if err != nil {
			log.Fatalf("decode document: %v", err)
		}
		req.Base = &doc
	} else {
		req.Payload = raw
	}

	result, err := gen.Generate(ctx, req)
	if err != nil && !errors.Is(err, orchestrator.ErrNotExportable) {
		log.Fatalf("generate: %v", err)
	}

	for _, issue := range result.SchemaIssues {
		fmt.Fprintf(os.Stderr, "payload: %s %s\n", issue.Path, issue.Message)
	}

	if *interactive && !result.Report.Exportable() {
		doc, err := completeDocument(result.Document)
		if err != nil {
			log.Fatalf("interactive completion: %v", err)
		}
		req = orchestrator.Request{
			Base:         &doc,
			Renderer:     *rendererName,
			AllowInvalid: *allowInvalid,
		}
		result, err = gen.Generate(ctx, req)
		if err != nil && !errors.Is(err, orchestrator.ErrNotExportable) {
			log.Fatalf("generate: %v", err)
		}
	}

	printReport(os.Stderr, result.Report)
	if errors.Is(err, orchestrator.ErrNotExportable) && len(result.Output) == 0 {
		log.Fatalf("document is not exportable; fix the errors above or pass -allow-invalid")
	}

	if *output != "" {
		if err := os.WriteFile(*output, result.Output, 0o644); err != nil {
			log.Fatalf("write output: %v", err)
		}
		fmt.Printf("Document written to %s\n", *output)
	} else {
		fmt.Println(string(result.Output))
	}
}

func printReport(w *os.File, report validate.Report) {
	for _, issue := range report.Errors {
		fmt.Fprintf(w, "error [%s] %s\n", issue.Section, issue.Message)
	}
	for _, issue := range report.Warnings {
		fmt.Fprintf(w, "warning [%s] %s\n", issue.Section, issue.Message)
	}
}

// completeDocument prompts for the mandatory fields that are still blank and
// returns a new tree with the answers applied.
func completeDocument(doc document.Document) (document.Document, error) {
	out := doc.Clone()

	if out.AdministrativeData.Title == "" {
		kinds := document.Kinds()
		options := make([]string, len(kinds))
		for i, kind := range kinds {
			options[i] = string(kind)
		}
		chosen, err := askSelect("Document title", options)
		if err != nil {
			return document.Document{}, err
		}
		out.AdministrativeData.Title = document.DocumentKind(chosen)
	}

	if len(out.AdministrativeData.Producers) == 0 {
		out.AdministrativeData.Producers = []document.Producer{document.NewProducer()}
	}
	for i := range out.AdministrativeData.Producers {
		if out.AdministrativeData.Producers[i].Name != "" {
			continue
		}
		name, err := askInput(fmt.Sprintf("Producer %d name", i+1))
		if err != nil {
			return document.Document{}, err
		}
		out.AdministrativeData.Producers[i].Name = name
	}

	if len(out.Materials) == 0 {
		material := document.NewMaterial()
		name, err := askInput("Material name")
		if err != nil {
			return document.Document{}, err
		}
		material.Name = name
		size, err := askInput("Minimum sample size (e.g. \"100 mg\")")
		if err != nil {
			return document.Document{}, err
		}
		material.MinimumSampleSize = size
		out.Materials = []document.Material{material}
	}
	for i := range out.Materials {
		if out.Materials[i].MinimumSampleSize == "" {
			size, err := askInput(fmt.Sprintf("Minimum sample size for %q", out.Materials[i].Name))
			if err != nil {
				return document.Document{}, err
			}
			out.Materials[i].MinimumSampleSize = size
		}
	}

	statements := []struct {
		field   *string
		message string
	}{
		{&out.Statements.IntendedUse, "Intended use"},
		{&out.Statements.StorageInformation, "Storage information"},
		{&out.Statements.HandlingInstructions, "Handling instructions"},
	}
	for _, s := range statements {
		if *s.field != "" {
			continue
		}
		text, err := askMultiline(s.message)
		if err != nil {
			return document.Document{}, err
		}
		*s.field = text
	}

	return out, nil
}
