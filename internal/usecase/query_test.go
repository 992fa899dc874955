package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/GoArmGo/SnapShowdown/internal/domain"
)

func newQueryFixture() (*memUserStorage, *memPhotoStorage, *memVoteLedger, *memCommentStorage, QueryUseCase) {
	users := newMemUserStorage()
	photos := newMemPhotoStorage()
	ledger := newMemVoteLedger(photos)
	comments := newMemCommentStorage()
	uc := NewQueryUseCase(users, photos, ledger, comments, testLogger())
	return users, photos, ledger, comments, uc
}

func seedRanked(users *memUserStorage, photos *memPhotoStorage, votes []int) []*domain.Photo {
	owner := seedUser(users, domain.RoleParticipant)
	out := make([]*domain.Photo, 0, len(votes))
	for _, v := range votes {
		p := seedPhoto(photos, owner.ID, domain.PhotoStatusApproved)
		p.VotesCount = v
		photos.photos[p.ID] = *p
		out = append(out, p)
	}
	return out
}

func TestLeaderboard(t *testing.T) {
	ctx := context.Background()

	t.Run("orders by votes with stable tie-break", func(t *testing.T) {
		users, photos, _, _, uc := newQueryFixture()
		seedRanked(users, photos, []int{5, 3, 3, 1})

		list, err := uc.Leaderboard(ctx, 0)
		if err != nil {
			t.Fatalf("Leaderboard: %v", err)
		}
		if len(list) != 4 {
			t.Fatalf("len = %d, want 4", len(list))
		}

		wantVotes := []int{5, 3, 3, 1}
		for i, want := range wantVotes {
			if list[i].VotesCount != want {
				t.Errorf("list[%d].VotesCount = %d, want %d", i, list[i].VotesCount, want)
			}
		}
		// Equal vote counts keep a stable order across calls.
		again, _ := uc.Leaderboard(ctx, 0)
		for i := range list {
			if list[i].ID != again[i].ID {
				t.Errorf("order changed between calls at index %d", i)
			}
		}
	})

	t.Run("excludes unapproved photos", func(t *testing.T) {
		users, photos, _, _, uc := newQueryFixture()
		owner := seedUser(users, domain.RoleParticipant)
		seedPhoto(photos, owner.ID, domain.PhotoStatusPending)
		seedPhoto(photos, owner.ID, domain.PhotoStatusRejected)
		seedPhoto(photos, owner.ID, domain.PhotoStatusApproved)

		list, err := uc.Leaderboard(ctx, 0)
		if err != nil {
			t.Fatalf("Leaderboard: %v", err)
		}
		if len(list) != 1 {
			t.Errorf("len = %d, want 1", len(list))
		}
	})
}

func TestPreviousWinners(t *testing.T) {
	ctx := context.Background()
	users, photos, _, _, uc := newQueryFixture()
	seedRanked(users, photos, []int{9, 7, 5, 3, 1})

	winners, err := uc.PreviousWinners(ctx)
	if err != nil {
		t.Fatalf("PreviousWinners: %v", err)
	}
	if len(winners) != 3 {
		t.Fatalf("len = %d, want 3", len(winners))
	}
	for i, want := range []int{9, 7, 5} {
		if winners[i].VotesCount != want {
			t.Errorf("winners[%d].VotesCount = %d, want %d", i, winners[i].VotesCount, want)
		}
	}
}

func TestGallery(t *testing.T) {
	ctx := context.Background()
	users, photos, _, _, uc := newQueryFixture()
	seedRanked(users, photos, []int{4, 3, 2, 1})

	page1, err := uc.Gallery(ctx, 1, 2)
	if err != nil {
		t.Fatalf("Gallery page 1: %v", err)
	}
	page2, err := uc.Gallery(ctx, 2, 2)
	if err != nil {
		t.Fatalf("Gallery page 2: %v", err)
	}
	if len(page1) != 2 || len(page2) != 2 {
		t.Fatalf("page sizes = %d, %d, want 2, 2", len(page1), len(page2))
	}
	if page1[0].VotesCount != 4 || page2[0].VotesCount != 2 {
		t.Errorf("pagination order wrong: %d, %d", page1[0].VotesCount, page2[0].VotesCount)
	}
}

func TestPhotoDetail(t *testing.T) {
	ctx := context.Background()

	t.Run("visitor sees approved photo without flags", func(t *testing.T) {
		users, photos, _, _, uc := newQueryFixture()
		owner := seedUser(users, domain.RoleParticipant)
		photo := seedPhoto(photos, owner.ID, domain.PhotoStatusApproved)

		detail, err := uc.PhotoDetail(ctx, nil, photo.ID)
		if err != nil {
			t.Fatalf("PhotoDetail: %v", err)
		}
		if detail.AuthorName != owner.Username {
			t.Errorf("author = %q, want %q", detail.AuthorName, owner.Username)
		}
		if detail.CanVote || detail.CanComment || detail.CanEdit {
			t.Error("anonymous viewers hold no permissions")
		}
	})

	t.Run("voter can vote on someone else's approved photo", func(t *testing.T) {
		users, photos, _, _, uc := newQueryFixture()
		owner := seedUser(users, domain.RoleParticipant)
		viewer := seedUser(users, domain.RoleVoter)
		photo := seedPhoto(photos, owner.ID, domain.PhotoStatusApproved)

		detail, err := uc.PhotoDetail(ctx, viewer, photo.ID)
		if err != nil {
			t.Fatalf("PhotoDetail: %v", err)
		}
		if !detail.CanVote {
			t.Error("CanVote = false, want true")
		}
		if !detail.CanComment {
			t.Error("CanComment = false, want true")
		}
		if detail.CanEdit {
			t.Error("CanEdit = true, want false")
		}
	})

	t.Run("flags flip after voting", func(t *testing.T) {
		users, photos, ledger, _, uc := newQueryFixture()
		owner := seedUser(users, domain.RoleParticipant)
		viewer := seedUser(users, domain.RoleVoter)
		photo := seedPhoto(photos, owner.ID, domain.PhotoStatusApproved)

		if _, err := ledger.InsertVote(ctx, viewer.ID, photo.ID); err != nil {
			t.Fatalf("InsertVote: %v", err)
		}

		detail, err := uc.PhotoDetail(ctx, viewer, photo.ID)
		if err != nil {
			t.Fatalf("PhotoDetail: %v", err)
		}
		if detail.CanVote {
			t.Error("CanVote = true after voting, want false")
		}
	})

	t.Run("owner cannot vote but can edit while pending", func(t *testing.T) {
		users, photos, _, _, uc := newQueryFixture()
		owner := seedUser(users, domain.RoleParticipant)
		photo := seedPhoto(photos, owner.ID, domain.PhotoStatusPending)

		detail, err := uc.PhotoDetail(ctx, owner, photo.ID)
		if err != nil {
			t.Fatalf("PhotoDetail: %v", err)
		}
		if detail.CanVote {
			t.Error("owners never vote on their own photo")
		}
		if !detail.CanEdit {
			t.Error("CanEdit = false for pending own photo, want true")
		}
	})

	t.Run("hidden photo is not found for outsiders", func(t *testing.T) {
		users, photos, _, _, uc := newQueryFixture()
		owner := seedUser(users, domain.RoleParticipant)
		stranger := seedUser(users, domain.RoleVoter)
		photo := seedPhoto(photos, owner.ID, domain.PhotoStatusPending)

		_, err := uc.PhotoDetail(ctx, stranger, photo.ID)
		if !errors.Is(err, domain.ErrNotFound) {
			t.Errorf("err = %v, want ErrNotFound", err)
		}
	})

	t.Run("admin sees any photo", func(t *testing.T) {
		users, photos, _, _, uc := newQueryFixture()
		owner := seedUser(users, domain.RoleParticipant)
		admin := seedUser(users, domain.RoleAdmin)
		photo := seedPhoto(photos, owner.ID, domain.PhotoStatusRejected)

		if _, err := uc.PhotoDetail(ctx, admin, photo.ID); err != nil {
			t.Fatalf("PhotoDetail as admin: %v", err)
		}
	})
}

func TestListUserPhotos(t *testing.T) {
	ctx := context.Background()
	users, photos, _, _, uc := newQueryFixture()
	owner := seedUser(users, domain.RoleParticipant)

	approved := seedPhoto(photos, owner.ID, domain.PhotoStatusApproved)
	approved.VotesCount = 4
	photos.photos[approved.ID] = *approved
	seedPhoto(photos, owner.ID, domain.PhotoStatusPending)
	seedPhoto(photos, owner.ID, domain.PhotoStatusPending)
	seedPhoto(photos, owner.ID, domain.PhotoStatusRejected)

	result, err := uc.ListUserPhotos(ctx, owner.ID)
	if err != nil {
		t.Fatalf("ListUserPhotos: %v", err)
	}
	if result.ApprovedCount != 1 || result.PendingCount != 2 || result.RejectedCount != 1 {
		t.Errorf("counts = %d/%d/%d, want 1/2/1",
			result.ApprovedCount, result.PendingCount, result.RejectedCount)
	}
	if result.TotalVotes != 4 {
		t.Errorf("total votes = %d, want 4", result.TotalVotes)
	}
}

func TestListByStatus(t *testing.T) {
	ctx := context.Background()
	users, photos, _, _, uc := newQueryFixture()
	admin := seedUser(users, domain.RoleAdmin)
	participant := seedUser(users, domain.RoleParticipant)
	seedPhoto(photos, participant.ID, domain.PhotoStatusPending)
	seedPhoto(photos, participant.ID, domain.PhotoStatusApproved)

	list, err := uc.ListByStatus(ctx, admin, domain.PhotoStatusPending)
	if err != nil {
		t.Fatalf("ListByStatus: %v", err)
	}
	if len(list) != 1 {
		t.Errorf("len = %d, want 1", len(list))
	}

	if _, err := uc.ListByStatus(ctx, participant, domain.PhotoStatusPending); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("err = %v, want ErrForbidden", err)
	}
	if _, err := uc.ListByStatus(ctx, nil, domain.PhotoStatusPending); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("nil viewer err = %v, want ErrForbidden", err)
	}
}
