package editor_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Inventario-tiendas/internal/application/editor"
)

func TestViolates(t *testing.T) {
	records := []editor.Record{
		{ID: 5, SKU: "X100", Store: "NYC"},
		{ID: 6, SKU: "X100", Store: "LA"},
	}
	five := int64(5)
	six := int64(6)

	cases := []struct {
		name    string
		c       editor.Candidate
		exclude *int64
		want    bool
	}{
		{"alta con pareja existente", editor.Candidate{SKU: "X100", Store: "NYC"}, nil, true},
		{"alta con pareja libre", editor.Candidate{SKU: "X100", Store: "MIA"}, nil, false},
		{"mismo sku otra tienda", editor.Candidate{SKU: "X200", Store: "NYC"}, nil, false},
		{"edición sin cambios se excluye a sí misma", editor.Candidate{SKU: "X100", Store: "NYC"}, &five, false},
		{"edición hacia pareja de otro", editor.Candidate{SKU: "X100", Store: "NYC"}, &six, true},
		{"distingue mayúsculas", editor.Candidate{SKU: "x100", Store: "NYC"}, nil, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, editor.Violates(records, tc.c, tc.exclude))
		})
	}
}

func TestViolates_SnapshotVacio(t *testing.T) {
	assert.False(t, editor.Violates(nil, editor.Candidate{SKU: "A", Store: "B"}, nil))
}
