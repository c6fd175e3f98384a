package pgerrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	unique := &pq.Error{Code: UniqueViolation, Constraint: "cars_plate_number_key"}
	fk := fmt.Errorf("wrapped: %w", &pq.Error{Code: ForeignKeyViolation})

	assert.True(t, IsUniqueViolation(unique))
	assert.False(t, IsForeignKeyViolation(unique))
	assert.Equal(t, "cars_plate_number_key", Constraint(unique))

	assert.True(t, IsForeignKeyViolation(fk))
	assert.False(t, IsUniqueViolation(errors.New("plain")))
	assert.Empty(t, Constraint(errors.New("plain")))
}
