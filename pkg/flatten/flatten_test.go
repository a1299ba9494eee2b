package flatten_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-schemaflat/pkg/flatten"
	"github.com/goliatone/go-schemaflat/pkg/schema"
)

const refPrefix = "#/components/schemas/"

type named struct {
	name   string
	schema *schema.Schema
}

func definitions(entries ...named) *schema.Definitions {
	defs := schema.NewDefinitions()
	for _, entry := range entries {
		defs.Add(entry.name, entry.schema)
	}
	return defs
}

func object(props ...schema.Property) *schema.Schema {
	return &schema.Schema{Type: "object", Properties: props}
}

func prop(name string, s *schema.Schema) schema.Property {
	return schema.Property{Name: name, Schema: s}
}

func ref(name string) *schema.Schema {
	return &schema.Schema{Ref: refPrefix + name}
}

func typed(kind string) *schema.Schema {
	return &schema.Schema{Type: kind}
}

func mustFlatten(t *testing.T, root string, defs *schema.Definitions, options ...flatten.Option) flatten.Result {
	t.Helper()
	result, err := flatten.Flatten(root, defs, options...)
	if err != nil {
		t.Fatalf("flatten %s: %v", root, err)
	}
	return result
}

func TestFlatten_ReferenceProperty(t *testing.T) {
	defs := definitions(
		named{"A", object(prop("b", ref("B")))},
		named{"B", object(prop("c", typed("string")))},
	)

	result := mustFlatten(t, "A", defs)

	want := []flatten.Record{
		{
			Field: "A", Model: "*", Parent: "*", Type: "object", Sort: "1",
			Props:    []string{"b"},
			Metadata: flatten.Metadata{Description: "Root schema A"},
		},
		{
			Field: "b", Model: "A.b", Parent: "A", Type: "ref", Sort: "1.1",
			Props:   []string{"c"},
			RefInfo: &flatten.RefInfo{Ref: refPrefix + "B", RefType: "object"},
		},
		{
			Field: "c", Model: "A.b.c", Parent: "A.b", Type: "string", Sort: "1.1.1",
			Props: []string{},
		},
	}
	if diff := cmp.Diff(want, result.Records); diff != "" {
		t.Fatalf("records mismatch (-want +got):\n%s", diff)
	}
	if len(result.Skipped) != 0 {
		t.Fatalf("expected no skipped references, got %+v", result.Skipped)
	}
}

func TestFlatten_OneOfProperty(t *testing.T) {
	defs := definitions(
		named{"A", object(prop("pet", &schema.Schema{OneOf: []*schema.Schema{ref("X"), ref("Y")}}))},
		named{"X", object(prop("x", typed("string")))},
		named{"Y", object(prop("y", typed("integer")))},
	)

	result := mustFlatten(t, "A", defs)

	want := []flatten.Record{
		{
			Field: "A", Model: "*", Parent: "*", Type: "object", Sort: "1",
			Props:    []string{"pet"},
			Metadata: flatten.Metadata{Description: "Root schema A"},
		},
		{
			Field: "oneOf", Model: "A.pet.oneOf", Parent: "A.pet", Type: "oneOf", Sort: "1.1",
			Props:     []string{"x", "y"},
			UnionInfo: &flatten.UnionInfo{OneOfRefs: []string{refPrefix + "X", refPrefix + "Y"}},
		},
		{
			Field: "X", Model: "A.pet.oneOf.X", Parent: "A.pet.oneOf", Type: "object", Sort: "1.1.1",
			Props:   []string{"x"},
			RefInfo: &flatten.RefInfo{Ref: refPrefix + "X"},
		},
		{
			Field: "x", Model: "A.pet.oneOf.X.x", Parent: "A.pet.oneOf.X", Type: "string", Sort: "1.1.1.1",
			Props: []string{},
		},
		{
			Field: "Y", Model: "A.pet.oneOf.Y", Parent: "A.pet.oneOf", Type: "object", Sort: "1.1.2",
			Props:   []string{"y"},
			RefInfo: &flatten.RefInfo{Ref: refPrefix + "Y"},
		},
		{
			Field: "y", Model: "A.pet.oneOf.Y.y", Parent: "A.pet.oneOf.Y", Type: "number", Sort: "1.1.2.1",
			Props: []string{},
		},
	}
	if diff := cmp.Diff(want, result.Records); diff != "" {
		t.Fatalf("records mismatch (-want +got):\n%s", diff)
	}
}

func TestFlatten_ArrayOfReferences(t *testing.T) {
	root := object(prop("items", &schema.Schema{Type: "array", Items: ref("Item")}))
	root.Required = []string{"items"}
	defs := definitions(
		named{"A", root},
		named{"Item", object(prop("id", typed("integer")), prop("name", typed("string")))},
	)

	result := mustFlatten(t, "A", defs)

	want := []flatten.Record{
		{
			Field: "A", Model: "*", Parent: "*", Type: "object", Sort: "1",
			Props:    []string{"items"},
			Metadata: flatten.Metadata{Description: "Root schema A"},
		},
		{
			Field: "items", Model: "A.items", Parent: "A", Type: "array", Required: true, Sort: "1.1",
			Props:     []string{"id", "name"},
			ArrayInfo: &flatten.ArrayInfo{ItemsType: "object", ItemsRef: refPrefix + "Item"},
		},
		{
			Field: "id", Model: "A.items.id", Parent: "A.items", Type: "number", Sort: "1.1.1",
			Props: []string{},
		},
		{
			Field: "name", Model: "A.items.name", Parent: "A.items", Type: "string", Sort: "1.1.2",
			Props: []string{},
		},
	}
	if diff := cmp.Diff(want, result.Records); diff != "" {
		t.Fatalf("records mismatch (-want +got):\n%s", diff)
	}
}

func TestFlatten_ScalarAndInlineArrays(t *testing.T) {
	minItems := 1
	tags := &schema.Schema{Type: "array", Items: typed("string"), MinItems: &minItems}
	lines := &schema.Schema{Type: "array", Items: object(prop("sku", typed("string")))}
	bare := &schema.Schema{Type: "array"}
	defs := definitions(named{"Order", object(prop("tags", tags), prop("lines", lines), prop("bare", bare))})

	result := mustFlatten(t, "Order", defs)
	byModel := indexByModel(result.Records)

	if got := byModel["Order.tags"]; got.ArrayInfo == nil || got.ItemsType != "string" || got.ItemsRef != "" {
		t.Fatalf("unexpected tags record: %+v", got)
	}
	if got := byModel["Order.tags"]; got.MinItems == nil || *got.MinItems != 1 {
		t.Fatalf("expected minItems metadata on tags, got %+v", got.Metadata)
	}
	if got := byModel["Order.lines"]; got.ItemsType != "object" || len(got.Props) != 1 || got.Props[0] != "sku" {
		t.Fatalf("unexpected lines record: %+v", got)
	}
	sku, ok := byModel["Order.lines.sku"]
	if !ok {
		t.Fatalf("expected inline item property Order.lines.sku")
	}
	if sku.Sort != "1.2.1" || sku.Parent != "Order.lines" {
		t.Fatalf("unexpected sku record: %+v", sku)
	}
	if got := byModel["Order.bare"]; got.ItemsType != "unknown" {
		t.Fatalf("items_type for missing items = %q, want unknown", got.ItemsType)
	}
	if len(result.Records) != 5 {
		t.Fatalf("expected 5 records, got %d", len(result.Records))
	}
}

func TestFlatten_MissingRoot(t *testing.T) {
	defs := definitions(named{"A", object()})

	result, err := flatten.Flatten("Nope", defs)
	if err == nil {
		t.Fatalf("expected error for missing root")
	}
	if !errors.Is(err, flatten.ErrSchemaNotFound) {
		t.Fatalf("expected ErrSchemaNotFound, got %v", err)
	}
	var notFound *flatten.NotFoundError
	if !errors.As(err, &notFound) || notFound.Name != "Nope" {
		t.Fatalf("expected NotFoundError for Nope, got %#v", err)
	}
	if len(result.Records) != 0 {
		t.Fatalf("expected no records, got %d", len(result.Records))
	}
}

func TestFlatten_SelfReferenceTerminates(t *testing.T) {
	defs := definitions(named{"Node", object(
		prop("next", ref("Node")),
		prop("children", &schema.Schema{Type: "array", Items: ref("Node")}),
		prop("value", typed("string")),
	)})

	result := mustFlatten(t, "Node", defs)

	models := modelsOf(result.Records)
	want := []string{"*", "Node.next", "Node.children", "Node.value"}
	if diff := cmp.Diff(want, models); diff != "" {
		t.Fatalf("models mismatch (-want +got):\n%s", diff)
	}
}

func TestFlatten_MutualReferenceTerminates(t *testing.T) {
	defs := definitions(
		named{"A", object(prop("b", ref("B")))},
		named{"B", object(prop("a", ref("A")), prop("peer", &schema.Schema{OneOf: []*schema.Schema{ref("A"), ref("B")}}))},
	)

	result := mustFlatten(t, "A", defs)

	want := []string{
		"*",
		"A.b",
		"A.b.a",
		"A.b.peer.oneOf",
		"A.b.peer.oneOf.A",
		"A.b.peer.oneOf.B",
	}
	if diff := cmp.Diff(want, modelsOf(result.Records)); diff != "" {
		t.Fatalf("models mismatch (-want +got):\n%s", diff)
	}
}

func TestFlatten_SiblingBranchesExpandSameSchema(t *testing.T) {
	defs := definitions(
		named{"A", object(prop("home", ref("Address")), prop("work", ref("Address")))},
		named{"Address", object(prop("city", typed("string")))},
	)

	result := mustFlatten(t, "A", defs)
	byModel := indexByModel(result.Records)

	for _, model := range []string{"A.home.city", "A.work.city"} {
		if _, ok := byModel[model]; !ok {
			t.Fatalf("expected %s to be expanded, got %v", model, modelsOf(result.Records))
		}
	}
}

func TestFlatten_UnresolvedReferenceIsSkipped(t *testing.T) {
	defs := definitions(named{"A", object(
		prop("ghost", ref("Missing")),
		prop("name", typed("string")),
		prop("choice", &schema.Schema{AnyOf: []*schema.Schema{ref("Gone"), typed("string")}}),
	)})

	result := mustFlatten(t, "A", defs)
	byModel := indexByModel(result.Records)

	if _, ok := byModel["A.ghost"]; ok {
		t.Fatalf("unresolved reference must not produce a record")
	}
	if got := byModel["A.name"].Sort; got != "1.2" {
		t.Fatalf("name sort = %q, want 1.2 (index of dropped property is kept)", got)
	}
	container := byModel["A.choice.anyOf"]
	if container.UnionInfo == nil || len(container.OneOfRefs) != 1 {
		t.Fatalf("expected anyOf container listing the dangling ref, got %+v", container)
	}

	wantSkipped := []flatten.SkippedRef{
		{Ref: refPrefix + "Missing", Model: "A.ghost"},
		{Ref: refPrefix + "Gone", Model: "A.choice.anyOf"},
	}
	if diff := cmp.Diff(wantSkipped, result.Skipped); diff != "" {
		t.Fatalf("skipped mismatch (-want +got):\n%s", diff)
	}

	_, err := flatten.Flatten("A", defs, flatten.WithStrictReferences(true))
	if !errors.Is(err, flatten.ErrUnresolvedReference) {
		t.Fatalf("expected ErrUnresolvedReference in strict mode, got %v", err)
	}
	if !strings.Contains(err.Error(), "Missing") {
		t.Fatalf("strict error should name the missing reference: %v", err)
	}
}

func TestFlatten_NodeLevelUnionsTakeLeadingSegments(t *testing.T) {
	root := object(prop("z", typed("boolean")))
	root.AnyOf = []*schema.Schema{object(prop("p", typed("string")))}
	root.OneOf = []*schema.Schema{ref("X")}
	root.Discriminator = map[string]any{"propertyName": "kind"}
	defs := definitions(
		named{"A", root},
		named{"X", object(prop("x", typed("number")))},
	)

	result := mustFlatten(t, "A", defs)

	type row struct{ Model, Parent, Type, Sort string }
	var got []row
	for _, rec := range result.Records {
		got = append(got, row{rec.Model, rec.Parent, rec.Type, rec.Sort})
	}
	want := []row{
		{"*", "*", "object", "1"},
		{"A.anyOf", "A", "anyOf", "1.1"},
		{"A.anyOf.p", "A.anyOf", "string", "1.1.1.1"},
		{"A.oneOf", "A", "oneOf", "1.2"},
		{"A.oneOf.X", "A.oneOf", "object", "1.2.1"},
		{"A.oneOf.X.x", "A.oneOf.X", "number", "1.2.1.1"},
		{"A.z", "A", "boolean", "1.3"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("records mismatch (-want +got):\n%s", diff)
	}

	oneOf := indexByModel(result.Records)["A.oneOf"]
	if diff := cmp.Diff([]string{"z", "x"}, oneOf.Props); diff != "" {
		t.Fatalf("union props mismatch (-want +got):\n%s", diff)
	}
	if oneOf.Discriminator == nil {
		t.Fatalf("expected discriminator on oneOf container")
	}
}

func TestFlatten_ReferenceDescriptionMerge(t *testing.T) {
	owner := ref("Person")
	owner.Description = "The owner."
	contact := ref("Person")
	contact.Description = "Primary contact. A person."
	plain := ref("Person")
	person := object(prop("name", typed("string")))
	person.Description = "A person."

	defs := definitions(
		named{"Pet", object(prop("owner", owner), prop("contact", contact), prop("plain", plain))},
		named{"Person", person},
	)

	byModel := indexByModel(mustFlatten(t, "Pet", defs).Records)

	cases := map[string]string{
		"Pet.owner":   "The owner. A person.",
		"Pet.contact": "Primary contact. A person.",
		"Pet.plain":   "A person.",
	}
	for model, want := range cases {
		if got := byModel[model].Description; got != want {
			t.Fatalf("%s description = %q, want %q", model, got, want)
		}
	}
}

func TestFlatten_RootAlias(t *testing.T) {
	defs := definitions(
		named{"Alias", ref("Target")},
		named{"Target", object(prop("id", typed("string")))},
	)

	result := mustFlatten(t, "Alias", defs)

	if diff := cmp.Diff([]string{"*", "Alias.id"}, modelsOf(result.Records)); diff != "" {
		t.Fatalf("models mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"id"}, result.Records[0].Props); diff != "" {
		t.Fatalf("root props mismatch (-want +got):\n%s", diff)
	}
}

func TestFlatten_RootDescriptionOption(t *testing.T) {
	defs := definitions(named{"A", object()})

	result := mustFlatten(t, "A", defs, flatten.WithRootDescription("custom"))
	if got := result.Records[0].Description; got != "custom" {
		t.Fatalf("root description = %q, want custom", got)
	}
}

func indexByModel(records []flatten.Record) map[string]flatten.Record {
	out := make(map[string]flatten.Record, len(records))
	for _, rec := range records {
		out[rec.Model] = rec
	}
	return out
}

func modelsOf(records []flatten.Record) []string {
	out := make([]string, 0, len(records))
	for _, rec := range records {
		out = append(out, rec.Model)
	}
	return out
}
