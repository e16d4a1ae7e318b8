package repository

import (
	"testing"
	"time"

	"microblog/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedPost(t *testing.T, repo *PostRepository, authorID uint, title string, createdAt time.Time) *model.Post {
	t.Helper()
	p := &model.Post{
		AuthorID:  authorID,
		Title:     title,
		Body:      "body",
		BodyHTML:  "<p>body</p>",
		CreatedAt: createdAt,
	}
	require.NoError(t, repo.Create(p))
	return p
}

func TestFeedJoinsFollowGraph(t *testing.T) {
	db := setupRepoDB(t)
	followRepo := NewFollowRepository(db)
	postRepo := NewPostRepository(db)

	a := seedUser(t, db, "a")
	b := seedUser(t, db, "b")
	c := seedUser(t, db, "c")

	// a关注自己和b，不关注c
	require.NoError(t, followRepo.Create(nil, a.ID, a.ID))
	require.NoError(t, followRepo.Create(nil, a.ID, b.ID))

	base := time.Now().Add(-time.Hour)
	older := seedPost(t, postRepo, b.ID, "older", base)
	own := seedPost(t, postRepo, a.ID, "own", base.Add(10*time.Minute))
	newer := seedPost(t, postRepo, b.ID, "newer", base.Add(20*time.Minute))
	seedPost(t, postRepo, c.ID, "unrelated", base.Add(30*time.Minute))

	feed, err := postRepo.Feed(a.ID, 0, 50)
	require.NoError(t, err)

	// 时间倒序，只含本人与关注对象的文章
	require.Len(t, feed, 3)
	assert.Equal(t, newer.ID, feed[0].ID)
	assert.Equal(t, own.ID, feed[1].ID)
	assert.Equal(t, older.ID, feed[2].ID)
}

func TestListByAuthorAndCount(t *testing.T) {
	db := setupRepoDB(t)
	postRepo := NewPostRepository(db)
	a := seedUser(t, db, "a")
	b := seedUser(t, db, "b")

	base := time.Now().Add(-time.Hour)
	seedPost(t, postRepo, a.ID, "p1", base)
	seedPost(t, postRepo, a.ID, "p2", base.Add(time.Minute))
	seedPost(t, postRepo, b.ID, "p3", base.Add(2*time.Minute))

	posts, err := postRepo.ListByAuthor(a.ID, 0, 50)
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, "p2", posts[0].Title)

	cnt, err := postRepo.CountByAuthor(a.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), cnt)
}

func TestDeleteByAuthor(t *testing.T) {
	db := setupRepoDB(t)
	postRepo := NewPostRepository(db)
	a := seedUser(t, db, "a")
	b := seedUser(t, db, "b")

	seedPost(t, postRepo, a.ID, "p1", time.Now())
	keep := seedPost(t, postRepo, b.ID, "p2", time.Now())

	require.NoError(t, postRepo.DeleteByAuthor(nil, a.ID))

	var cnt int64
	require.NoError(t, db.Model(&model.Post{}).Count(&cnt).Error)
	assert.Equal(t, int64(1), cnt)
	_, err := postRepo.GetByID(keep.ID)
	require.NoError(t, err)
}
