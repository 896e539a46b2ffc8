package firestore

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/PabloGalante/haven/internal/domain"
)

func TestNewStoreRequiresProject(t *testing.T) {
	_, err := NewStore(context.Background(), "")
	assert.Error(t, err)
}

func TestSessionDocRoundTrip(t *testing.T) {
	now := time.Now()
	sess := &domain.Session{ID: "s1", UserID: "u1", Title: "t", CreatedAt: now, UpdatedAt: now}
	assert.Equal(t, sess, toSessionDoc(sess).toDomain("s1"))
}
