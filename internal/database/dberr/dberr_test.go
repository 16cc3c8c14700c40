package dberr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestIsDuplicate(t *testing.T) {
	assert.False(t, IsDuplicate(nil))
	assert.True(t, IsDuplicate(gorm.ErrDuplicatedKey))
	assert.True(t, IsDuplicate(fmt.Errorf("create: %w", gorm.ErrDuplicatedKey)))
	assert.True(t, IsDuplicate(errors.New(`ERROR: duplicate key value violates unique constraint "teams_name_key"`)))
	assert.True(t, IsDuplicate(errors.New("UNIQUE constraint failed: teams.name")))
	assert.False(t, IsDuplicate(errors.New("connection refused")))
}

func TestIsForeignKey(t *testing.T) {
	assert.False(t, IsForeignKey(nil))
	assert.True(t, IsForeignKey(gorm.ErrForeignKeyViolated))
	assert.True(t, IsForeignKey(errors.New("FOREIGN KEY constraint failed")))
	assert.False(t, IsForeignKey(gorm.ErrDuplicatedKey))
}
