package db

import (
	"context"
	"testing"
)

func TestFollow_Self(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	user := createTestUser(t, db, "test-user", "user")

	err := db.Follow(context.Background(), user.ID, user.ID)
	if err != ErrSelfFollow {
		t.Errorf("Follow() self error = %v, want ErrSelfFollow", err)
	}
}

func TestFollow_Duplicate(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()

	follower := createTestUser(t, db, "test-follower", "follower")
	author := createTestUser(t, db, "test-author", "author")

	if err := db.Follow(ctx, follower.ID, author.ID); err != nil {
		t.Fatalf("Follow() error = %v", err)
	}
	err := db.Follow(ctx, follower.ID, author.ID)
	if err != ErrDuplicateFollow {
		t.Errorf("Follow() second call error = %v, want ErrDuplicateFollow", err)
	}
}

func TestUnfollow_NotFollowing(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	follower := createTestUser(t, db, "test-follower", "follower")
	author := createTestUser(t, db, "test-author", "author")

	err := db.Unfollow(context.Background(), follower.ID, author.ID)
	if err != ErrFollowNotFound {
		t.Errorf("Unfollow() error = %v, want ErrFollowNotFound", err)
	}
}

func TestListSubscriptions(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()

	follower := createTestUser(t, db, "test-follower", "follower")
	author := createTestUser(t, db, "test-author", "author")
	other := createTestUser(t, db, "test-other", "other")

	if err := db.Follow(ctx, follower.ID, author.ID); err != nil {
		t.Fatalf("Follow() error = %v", err)
	}
	if err := db.Follow(ctx, other.ID, follower.ID); err != nil {
		t.Fatalf("Follow() error = %v", err)
	}

	subs, err := db.ListSubscriptions(ctx, follower.ID)
	if err != nil {
		t.Fatalf("ListSubscriptions() error = %v", err)
	}
	if len(subs) != 1 {
		t.Fatalf("ListSubscriptions() returned %d profiles, want 1", len(subs))
	}
	if subs[0].ID != author.ID {
		t.Errorf("ListSubscriptions() [0] = %v, want %v", subs[0].ID, author.ID)
	}
	if !subs[0].IsSubscribed {
		t.Error("ListSubscriptions() is_subscribed = false, want true")
	}
}

func TestIsSubscribed(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()

	follower := createTestUser(t, db, "test-follower", "follower")
	author := createTestUser(t, db, "test-author", "author")

	subscribed, err := db.IsSubscribed(ctx, follower.ID, author.ID)
	if err != nil {
		t.Fatalf("IsSubscribed() error = %v", err)
	}
	if subscribed {
		t.Error("IsSubscribed() = true before Follow()")
	}

	if err := db.Follow(ctx, follower.ID, author.ID); err != nil {
		t.Fatalf("Follow() error = %v", err)
	}

	subscribed, err = db.IsSubscribed(ctx, follower.ID, author.ID)
	if err != nil {
		t.Fatalf("IsSubscribed() error = %v", err)
	}
	if !subscribed {
		t.Error("IsSubscribed() = false after Follow()")
	}
}

func TestFollow_CascadeOnUserDelete(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()

	follower := createTestUser(t, db, "test-follower", "follower")
	author := createTestUser(t, db, "test-author", "author")

	if err := db.Follow(ctx, follower.ID, author.ID); err != nil {
		t.Fatalf("Follow() error = %v", err)
	}
	if err := db.DeleteUser(ctx, author.ID); err != nil {
		t.Fatalf("DeleteUser() error = %v", err)
	}

	subs, err := db.ListSubscriptions(ctx, follower.ID)
	if err != nil {
		t.Fatalf("ListSubscriptions() error = %v", err)
	}
	if len(subs) != 0 {
		t.Errorf("ListSubscriptions() returned %d profiles after author delete", len(subs))
	}
}
