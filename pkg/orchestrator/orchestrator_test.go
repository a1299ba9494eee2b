package orchestrator_test

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/goliatone/go-schemaflat/pkg/flatten"
	pkgopenapi "github.com/goliatone/go-schemaflat/pkg/openapi"
	"github.com/goliatone/go-schemaflat/pkg/orchestrator"
	"github.com/goliatone/go-schemaflat/pkg/render"
	"github.com/goliatone/go-schemaflat/pkg/testsupport"
)

const dangling = `components:
  schemas:
    Order:
      type: object
      properties:
        id:
          type: string
        customer:
          $ref: '#/components/schemas/Customer'
`

func petstore() pkgopenapi.Source {
	return pkgopenapi.SourceFromFile(filepath.Join("testdata", "petstore.yaml"))
}

func TestOrchestrator_Generate_Petstore(t *testing.T) {
	ctx := testsupport.Context()

	output, err := orchestrator.New().Generate(ctx, orchestrator.Request{
		Source: petstore(),
		Root:   "Pet",
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	goldenPath := filepath.Join("testdata", "pet_fields.golden.json")
	if testsupport.WriteMaybeGolden(t, goldenPath, output) {
		return
	}
	want := testsupport.MustReadGolden(t, goldenPath)
	if diff := testsupport.CompareJSON(t, want, output); diff != "" {
		t.Fatalf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestOrchestrator_Run_Formats(t *testing.T) {
	ctx := testsupport.Context()
	orch := orchestrator.New()

	cases := []struct {
		format string
		marker string
	}{
		{"yaml", "- field: Pet\n"},
		{"table", "Pet.animal.oneOf.Dog.breed"},
		{"html", "<title>Pet fields</title>"},
	}
	for _, tc := range cases {
		t.Run(tc.format, func(t *testing.T) {
			out, err := orch.Run(ctx, orchestrator.Request{
				Source:        petstore(),
				Root:          "Pet",
				Format:        tc.format,
				RenderOptions: render.Options{NoColor: true},
			})
			if err != nil {
				t.Fatalf("run: %v", err)
			}
			if out.Writer.Name() != tc.format {
				t.Fatalf("writer = %s, want %s", out.Writer.Name(), tc.format)
			}
			if !strings.Contains(string(out.Body), tc.marker) {
				t.Fatalf("expected %q in output:\n%s", tc.marker, out.Body)
			}
		})
	}

	if _, err := orch.Run(ctx, orchestrator.Request{Source: petstore(), Format: "csv"}); err == nil {
		t.Fatalf("expected unknown format error")
	}
}

func TestOrchestrator_EmptyRootUsesFirstSchema(t *testing.T) {
	result, err := orchestrator.New().Flatten(testsupport.Context(), orchestrator.Request{Source: petstore()})
	if err != nil {
		t.Fatalf("flatten: %v", err)
	}
	if result.Root != "Pet" {
		t.Fatalf("root = %q, want Pet", result.Root)
	}
}

func TestOrchestrator_DefaultRoot(t *testing.T) {
	orch := orchestrator.New(orchestrator.WithDefaultRoot("Owner"))

	result, err := orch.Flatten(testsupport.Context(), orchestrator.Request{Source: petstore()})
	if err != nil {
		t.Fatalf("flatten: %v", err)
	}
	if result.Root != "Owner" {
		t.Fatalf("root = %q, want the pinned Owner", result.Root)
	}

	result, err = orch.Flatten(testsupport.Context(), orchestrator.Request{Source: petstore(), Root: "Tag"})
	if err != nil {
		t.Fatalf("flatten: %v", err)
	}
	if result.Root != "Tag" {
		t.Fatalf("root = %q, an explicit root must win over the default", result.Root)
	}

	missing := orchestrator.New(orchestrator.WithDefaultRoot("Unicorn"))
	if _, err := missing.Flatten(testsupport.Context(), orchestrator.Request{Source: petstore()}); !errors.Is(err, flatten.ErrSchemaNotFound) {
		t.Fatalf("a pinned root that is absent must not fall back, got %v", err)
	}
}

func TestOrchestrator_MissingRoot(t *testing.T) {
	_, err := orchestrator.New().Generate(testsupport.Context(), orchestrator.Request{
		Source: petstore(),
		Root:   "Unicorn",
	})
	if !errors.Is(err, flatten.ErrSchemaNotFound) {
		t.Fatalf("expected ErrSchemaNotFound, got %v", err)
	}
}

func TestOrchestrator_DocumentBypassesLoaderAndLogsSkipped(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	orch := orchestrator.New(orchestrator.WithLogger(zap.New(core)))

	doc := pkgopenapi.MustNewDocument(pkgopenapi.SourceInline("order"), []byte(dangling))
	result, err := orch.Flatten(testsupport.Context(), orchestrator.Request{Document: &doc, Root: "Order"})
	if err != nil {
		t.Fatalf("flatten: %v", err)
	}
	if len(result.Records) != 2 {
		t.Fatalf("expected root and id records, got %d", len(result.Records))
	}
	if got := logs.FilterMessage("unresolved reference").Len(); got != 1 {
		t.Fatalf("expected one warning, got %d", got)
	}
}

func TestOrchestrator_StrictReferences(t *testing.T) {
	orch := orchestrator.New(orchestrator.WithFlattenOptions(flatten.WithStrictReferences(true)))

	doc := pkgopenapi.MustNewDocument(pkgopenapi.SourceInline("order"), []byte(dangling))
	_, err := orch.Flatten(testsupport.Context(), orchestrator.Request{Document: &doc, Root: "Order"})
	if !errors.Is(err, flatten.ErrUnresolvedReference) {
		t.Fatalf("expected ErrUnresolvedReference, got %v", err)
	}

	var refErr *flatten.ReferenceError
	if !errors.As(err, &refErr) || refErr.Skipped[0].Model != "Order.customer" {
		t.Fatalf("expected reference error for Order.customer, got %v", err)
	}
}

func TestOrchestrator_RequiresInput(t *testing.T) {
	if _, err := orchestrator.New().Flatten(testsupport.Context(), orchestrator.Request{Root: "Pet"}); err == nil {
		t.Fatalf("expected error without source or document")
	}
}
