package paper

import (
	"encoding/json"
	"errors"
	"testing"
)

func square(n int, v float64) [][]float64 {
	m := make([][]float64, n)
	for i := range m {
		m[i] = make([]float64, n)
		for j := range m[i] {
			m[i][j] = v
		}
	}
	return m
}

func validSnapshot() *Snapshot {
	return &Snapshot{
		Tensor: [][][]float64{square(2, 1), square(2, 2)},
		Papers: []Paper{{ID: "a"}, {ID: "b"}},
		Similarities: []Similarity{
			{Name: "co-citation"},
			{Name: "bibliographic coupling"},
		},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(s *Snapshot)
		wantErr bool
	}{
		{
			name:   "valid snapshot",
			mutate: func(s *Snapshot) {},
		},
		{
			name:    "no papers",
			mutate:  func(s *Snapshot) { s.Papers = nil },
			wantErr: true,
		},
		{
			name:    "layer count differs from similarities",
			mutate:  func(s *Snapshot) { s.Similarities = s.Similarities[:1] },
			wantErr: true,
		},
		{
			name:    "layer has wrong row count",
			mutate:  func(s *Snapshot) { s.Tensor[1] = square(3, 0) },
			wantErr: true,
		},
		{
			name:    "row has wrong column count",
			mutate:  func(s *Snapshot) { s.Tensor[0][1] = []float64{1} },
			wantErr: true,
		},
		{
			name:    "duplicate ids",
			mutate:  func(s *Snapshot) { s.Papers[1].ID = "a" },
			wantErr: true,
		},
		{
			name:    "empty id",
			mutate:  func(s *Snapshot) { s.Papers[0].ID = "" },
			wantErr: true,
		},
		{
			name:    "id contains link separator",
			mutate:  func(s *Snapshot) { s.Papers[1].ID = "a" + LinkSeparator + "b" },
			wantErr: true,
		},
		{
			name: "no metrics",
			mutate: func(s *Snapshot) {
				s.Tensor = nil
				s.Similarities = nil
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := validSnapshot()
			tt.mutate(s)
			err := s.Validate()
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidSnapshot) {
					t.Errorf("Validate() error = %v, want ErrInvalidSnapshot", err)
				}
				return
			}
			if err != nil {
				t.Errorf("Validate() unexpected error: %v", err)
			}
		})
	}
}

func TestSnapshotJSONFieldNames(t *testing.T) {
	data := `{
		"tensor": [[[0, 3], [3, 0]]],
		"paper": [
			{"id": "root", "title": "Root", "paperAbstract": "abs", "inCitations": ["x", "y"],
			 "authors": [{"name": "Ada Lovelace", "ids": ["1"]}], "year": 2019,
			 "fieldsOfStudy": ["Computer Science"], "s2Url": "https://s2/root"},
			{"id": "other", "title": "Other"}
		],
		"similarities": [{"name": "co-citation", "description": "shared citers"}]
	}`

	var s Snapshot
	if err := json.Unmarshal([]byte(data), &s); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if err := s.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	root := s.Root()
	if root.ID != "root" {
		t.Errorf("Root().ID = %q, want root", root.ID)
	}
	if root.Abstract != "abs" {
		t.Errorf("Abstract = %q, want abs", root.Abstract)
	}
	if root.CitationCount() != 2 {
		t.Errorf("CitationCount() = %d, want 2", root.CitationCount())
	}
	if root.FirstAuthor() != "Ada Lovelace" {
		t.Errorf("FirstAuthor() = %q, want Ada Lovelace", root.FirstAuthor())
	}
	if got := s.MetricNames(); len(got) != 1 || got[0] != "co-citation" {
		t.Errorf("MetricNames() = %v, want [co-citation]", got)
	}
}

func TestSortedFieldsDoesNotMutate(t *testing.T) {
	p := Paper{Fields: []string{"Medicine", "Biology"}}
	got := p.SortedFields()
	if got[0] != "Biology" || got[1] != "Medicine" {
		t.Errorf("SortedFields() = %v, want [Biology Medicine]", got)
	}
	if p.Fields[0] != "Medicine" {
		t.Errorf("SortedFields() mutated the paper: %v", p.Fields)
	}
}

func TestHasSoleField(t *testing.T) {
	tests := []struct {
		fields []string
		want   bool
	}{
		{[]string{"Computer Science"}, true},
		{[]string{"computer science"}, false},
		{[]string{"Computer Science", "Computer Science"}, true},
		{[]string{"Computer Science", "Mathematics"}, false},
		{nil, false},
	}
	for _, tt := range tests {
		p := Paper{Fields: tt.fields}
		if got := p.HasSoleField("Computer Science"); got != tt.want {
			t.Errorf("HasSoleField(%v) = %v, want %v", tt.fields, got, tt.want)
		}
	}
}
