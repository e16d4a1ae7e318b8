package service

import (
	"fmt"
	"testing"

	"microblog/internal/model"
	"microblog/pkg/permission"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreatePostRendersBody(t *testing.T) {
	env := newTestEnv(t)
	alice := env.registerUser(t, "alice")

	post, err := env.posts.Create(alice, "标题", "正文 **加粗** <script>alert('x')</script>")
	require.NoError(t, err)
	assert.Contains(t, post.BodyHTML, "<strong>加粗</strong>")
	assert.NotContains(t, post.BodyHTML, "<script>")

	_, err = env.posts.Create(alice, "  ", "正文")
	assert.ErrorIs(t, err, ErrValidation)
	_, err = env.posts.Create(alice, "标题", "  ")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestUpdatePostPermissions(t *testing.T) {
	env := newTestEnv(t)
	alice := env.registerUser(t, "alice")
	bob := env.registerUser(t, "bob")
	admin := env.registerUser(t, "root")
	env.promote(t, admin, permission.RoleAdministrator)

	post, err := env.posts.Create(alice, "标题", "正文")
	require.NoError(t, err)

	// 他人不能编辑
	_, err = env.posts.Update(bob, post.ID, "改标题", "")
	assert.ErrorIs(t, err, ErrForbidden)

	// 作者可编辑，正文变更同步重渲染
	updated, err := env.posts.Update(alice, post.ID, "", "新正文 *强调*")
	require.NoError(t, err)
	assert.Equal(t, "标题", updated.Title)
	assert.Contains(t, updated.BodyHTML, "<em>强调</em>")

	// 管理员可编辑任意文章
	_, err = env.posts.Update(admin, post.ID, "管理员改的", "")
	require.NoError(t, err)
}

func TestDeletePostCascadesComments(t *testing.T) {
	env := newTestEnv(t)
	alice := env.registerUser(t, "alice")
	bob := env.registerUser(t, "bob")

	post, err := env.posts.Create(alice, "标题", "正文")
	require.NoError(t, err)
	_, err = env.comments.Add(bob, post.ID, "评论")
	require.NoError(t, err)

	assert.ErrorIs(t, env.posts.Delete(bob, post.ID), ErrForbidden)
	require.NoError(t, env.posts.Delete(alice, post.ID))

	_, err = env.posts.Get(post.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	var cnt int64
	require.NoError(t, env.db.Model(&model.Comment{}).Where("post_id = ?", post.ID).Count(&cnt).Error)
	assert.Zero(t, cnt)
}

func TestFeedContainsFollowedAndSelf(t *testing.T) {
	env := newTestEnv(t)
	alice := env.registerUser(t, "alice")
	bob := env.registerUser(t, "bob")
	carol := env.registerUser(t, "carol")

	require.NoError(t, env.follows.Follow(alice, "bob"))

	alicePost, err := env.posts.Create(alice, "Alice的文章", "正文")
	require.NoError(t, err)
	bobPost, err := env.posts.Create(bob, "Bob的文章", "正文")
	require.NoError(t, err)
	carolPost, err := env.posts.Create(carol, "Carol的文章", "正文")
	require.NoError(t, err)

	feed, err := env.posts.Feed(alice, 1, 20)
	require.NoError(t, err)

	ids := make([]uint, 0, len(feed))
	for _, p := range feed {
		ids = append(ids, p.ID)
	}
	// 关注流包含本人与关注对象，不包含无关用户
	assert.Contains(t, ids, alicePost.ID)
	assert.Contains(t, ids, bobPost.ID)
	assert.NotContains(t, ids, carolPost.ID)

	// Carol只关注自己
	carolFeed, err := env.posts.Feed(carol, 1, 20)
	require.NoError(t, err)
	require.Len(t, carolFeed, 1)
	assert.Equal(t, carolPost.ID, carolFeed[0].ID)
}

func TestFeedPagination(t *testing.T) {
	env := newTestEnv(t)
	alice := env.registerUser(t, "alice")

	for i := 0; i < 5; i++ {
		_, err := env.posts.Create(alice, fmt.Sprintf("文章%d", i), "正文")
		require.NoError(t, err)
	}

	page1, err := env.posts.Feed(alice, 1, 3)
	require.NoError(t, err)
	assert.Len(t, page1, 3)

	page2, err := env.posts.Feed(alice, 2, 3)
	require.NoError(t, err)
	assert.Len(t, page2, 2)

	// 两页无重叠
	seen := map[uint]bool{}
	for _, p := range page1 {
		seen[p.ID] = true
	}
	for _, p := range page2 {
		assert.False(t, seen[p.ID])
	}
}

func TestListByUsername(t *testing.T) {
	env := newTestEnv(t)
	alice := env.registerUser(t, "alice")
	_, err := env.posts.Create(alice, "标题", "正文")
	require.NoError(t, err)

	posts, err := env.posts.ListByUsername("alice", 1, 20)
	require.NoError(t, err)
	assert.Len(t, posts, 1)

	_, err = env.posts.ListByUsername("nobody", 1, 20)
	assert.ErrorIs(t, err, ErrNotFound)
}
