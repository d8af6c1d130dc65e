package orm_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shashiranjanraj/bookstore/pkg/orm"
)

func TestNewPagination_TotalPagesIsCeil(t *testing.T) {
	for total := int64(0); total <= 57; total++ {
		for limit := 1; limit <= 13; limit++ {
			p := orm.NewPagination(total, 1, limit)
			want := int(math.Ceil(float64(total) / float64(limit)))
			assert.Equal(t, want, p.TotalPages, "total=%d limit=%d", total, limit)
		}
	}
}

func TestNewPagination_Defaults(t *testing.T) {
	p := orm.NewPagination(0, 0, 0)
	assert.Equal(t, orm.Pagination{Total: 0, Page: 1, Limit: 10, TotalPages: 0}, p)

	p = orm.NewPagination(25, -3, 10)
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 3, p.TotalPages)
}

func TestOffset(t *testing.T) {
	assert.Equal(t, 0, orm.Offset(1, 10))
	assert.Equal(t, 20, orm.Offset(3, 10))
	assert.Equal(t, 0, orm.Offset(0, 10))
	assert.Equal(t, 500, orm.Offset(2, 500))
}
