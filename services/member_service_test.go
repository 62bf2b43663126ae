package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bulusma.link/dto"
	"bulusma.link/models"
)

// createMeetForMembers katılımcı testleri için boş bir buluşma açar.
func createMeetForMembers(t *testing.T, ownerID uint) *models.Meet {
	t.Helper()
	meet, err := NewMeetService().CreateMeetWithMembers(context.Background(), ownerID, validMeetRequest())
	require.NoError(t, err)
	return meet
}

func TestRegisterMember_Success(t *testing.T) {
	db := setupTestDB(t)
	owner := createTestUser(t, db, "sahip@ornek.com")
	meet := createMeetForMembers(t, owner.ID)
	svc := NewMemberService()

	member, err := svc.RegisterMember(context.Background(), dto.RegisterMemberRequest{
		Name:      "Ayşe",
		Companion: "Ali",
		Contact:   "ayse@ornek.com",
		MeetUid:   meet.Uid,
	})
	require.NoError(t, err)
	require.NotNil(t, member)

	// Self-registration her zaman guest olur ve taze token alır.
	assert.Equal(t, models.RoleGuest, member.Role)
	assert.NotEmpty(t, member.QrCode)
	assert.Equal(t, meet.Uid, member.MeetUid)
	assert.Equal(t, meet.Uid, member.Meet.Uid)
	assert.Equal(t, owner.ID, member.Meet.OwnerID)
}

func TestRegisterMember_MeetMissing(t *testing.T) {
	db := setupTestDB(t)
	_ = createTestUser(t, db, "sahip@ornek.com")
	svc := NewMemberService()

	_, err := svc.RegisterMember(context.Background(), dto.RegisterMemberRequest{
		Name:    "Ayşe",
		Contact: "ayse@ornek.com",
		MeetUid: "boyle-bir-bulusma-yok",
	})
	require.ErrorIs(t, err, ErrMemberMeetNotFound)
}

func TestRegisterMember_Validation(t *testing.T) {
	db := setupTestDB(t)
	owner := createTestUser(t, db, "sahip@ornek.com")
	meet := createMeetForMembers(t, owner.ID)
	svc := NewMemberService()

	t.Run("ad zorunlu", func(t *testing.T) {
		_, err := svc.RegisterMember(context.Background(), dto.RegisterMemberRequest{
			Contact: "ayse@ornek.com", MeetUid: meet.Uid,
		})
		require.ErrorIs(t, err, ErrMemberNameRequired)
	})

	t.Run("iletişim e-posta olmalı", func(t *testing.T) {
		_, err := svc.RegisterMember(context.Background(), dto.RegisterMemberRequest{
			Name: "Ayşe", Contact: "telefon-555", MeetUid: meet.Uid,
		})
		require.ErrorIs(t, err, ErrMemberInvalidContact)
	})

	t.Run("buluşma UID zorunlu", func(t *testing.T) {
		_, err := svc.RegisterMember(context.Background(), dto.RegisterMemberRequest{
			Name: "Ayşe", Contact: "ayse@ornek.com",
		})
		require.ErrorIs(t, err, ErrMemberInvalidInput)
	})
}

func TestRegisterMember_DuplicateContact(t *testing.T) {
	db := setupTestDB(t)
	owner := createTestUser(t, db, "sahip@ornek.com")
	meetA := createMeetForMembers(t, owner.ID)
	meetB := createMeetForMembers(t, owner.ID)
	svc := NewMemberService()

	req := dto.RegisterMemberRequest{Name: "Ayşe", Contact: "ayse@ornek.com", MeetUid: meetA.Uid}
	_, err := svc.RegisterMember(context.Background(), req)
	require.NoError(t, err)

	// Aynı buluşmaya aynı contact ikinci kez kaydolamaz.
	_, err = svc.RegisterMember(context.Background(), req)
	require.ErrorIs(t, err, ErrMemberDuplicateContact)

	// Farklı buluşmaya aynı contact serbesttir.
	req.MeetUid = meetB.Uid
	_, err = svc.RegisterMember(context.Background(), req)
	require.NoError(t, err)
}

func TestGetMemberByQr_RoundTrip(t *testing.T) {
	db := setupTestDB(t)
	owner := createTestUser(t, db, "sahip@ornek.com")
	meet := createMeetForMembers(t, owner.ID)
	svc := NewMemberService()

	registered, err := svc.RegisterMember(context.Background(), dto.RegisterMemberRequest{
		Name: "Ayşe", Contact: "ayse@ornek.com", MeetUid: meet.Uid,
	})
	require.NoError(t, err)

	// Check-in: token ile bulunan katılımcı kayıt olunan buluşmaya aittir.
	found, err := svc.GetMemberByQr(context.Background(), registered.QrCode)
	require.NoError(t, err)
	assert.Equal(t, registered.ID, found.ID)
	assert.Equal(t, meet.Uid, found.MeetUid)
	assert.Equal(t, meet.Uid, found.Meet.Uid)

	_, err = svc.GetMemberByQr(context.Background(), "bilinmeyen-token")
	require.ErrorIs(t, err, ErrMemberNotFound)

	_, err = svc.GetMemberByQr(context.Background(), "")
	require.ErrorIs(t, err, ErrMemberNotFound)
}

func TestGetMemberForOwner_OwnershipScope(t *testing.T) {
	db := setupTestDB(t)
	owner := createTestUser(t, db, "sahip@ornek.com")
	other := createTestUser(t, db, "baskasi@ornek.com")
	meet := createMeetForMembers(t, owner.ID)
	svc := NewMemberService()

	member, err := svc.RegisterMember(context.Background(), dto.RegisterMemberRequest{
		Name: "Ayşe", Contact: "ayse@ornek.com", MeetUid: meet.Uid,
	})
	require.NoError(t, err)

	got, err := svc.GetMemberForOwner(context.Background(), member.ID, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, member.ID, got.ID)

	// Başkasının katılımcısı ile hiç olmayan katılımcı aynı cevabı alır.
	_, err = svc.GetMemberForOwner(context.Background(), member.ID, other.ID)
	require.ErrorIs(t, err, ErrMemberNotFound)

	_, err = svc.GetMemberForOwner(context.Background(), 9999, owner.ID)
	require.ErrorIs(t, err, ErrMemberNotFound)
}

func TestUpdateMember_PartialUpdate(t *testing.T) {
	db := setupTestDB(t)
	owner := createTestUser(t, db, "sahip@ornek.com")
	meet := createMeetForMembers(t, owner.ID)
	svc := NewMemberService()

	member, err := svc.RegisterMember(context.Background(), dto.RegisterMemberRequest{
		Name: "Ayşe", Companion: "Ali", Contact: "ayse@ornek.com", MeetUid: meet.Uid,
	})
	require.NoError(t, err)

	// Sadece dolu alanlar değişir, boş bırakılanlar korunur.
	err = svc.UpdateMember(context.Background(), member.ID, owner.ID, dto.UpdateMemberRequest{
		Name: "Ayşe Yılmaz",
		Role: "staff",
	})
	require.NoError(t, err)

	got, err := svc.GetMemberForOwner(context.Background(), member.ID, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ayşe Yılmaz", got.Name)
	assert.Equal(t, models.RoleStaff, got.Role)
	assert.Equal(t, "Ali", got.Companion)
	assert.Equal(t, "ayse@ornek.com", got.Contact)

	// Tamamen boş istek no-op'tur.
	require.NoError(t, svc.UpdateMember(context.Background(), member.ID, owner.ID, dto.UpdateMemberRequest{}))
}

func TestUpdateMember_Validation(t *testing.T) {
	db := setupTestDB(t)
	owner := createTestUser(t, db, "sahip@ornek.com")
	other := createTestUser(t, db, "baskasi@ornek.com")
	meet := createMeetForMembers(t, owner.ID)
	svc := NewMemberService()

	member, err := svc.RegisterMember(context.Background(), dto.RegisterMemberRequest{
		Name: "Ayşe", Contact: "ayse@ornek.com", MeetUid: meet.Uid,
	})
	require.NoError(t, err)
	second, err := svc.RegisterMember(context.Background(), dto.RegisterMemberRequest{
		Name: "Mehmet", Contact: "mehmet@ornek.com", MeetUid: meet.Uid,
	})
	require.NoError(t, err)

	t.Run("tanımsız rol reddedilir", func(t *testing.T) {
		err := svc.UpdateMember(context.Background(), member.ID, owner.ID, dto.UpdateMemberRequest{Role: "patron"})
		require.ErrorIs(t, err, ErrMemberInvalidRole)
	})

	t.Run("geçersiz iletişim reddedilir", func(t *testing.T) {
		err := svc.UpdateMember(context.Background(), member.ID, owner.ID, dto.UpdateMemberRequest{Contact: "telefon"})
		require.ErrorIs(t, err, ErrMemberInvalidContact)
	})

	t.Run("aynı buluşmada contact çakışması", func(t *testing.T) {
		err := svc.UpdateMember(context.Background(), second.ID, owner.ID, dto.UpdateMemberRequest{Contact: "ayse@ornek.com"})
		require.ErrorIs(t, err, ErrMemberDuplicateContact)
	})

	t.Run("başkası güncelleyemez", func(t *testing.T) {
		err := svc.UpdateMember(context.Background(), member.ID, other.ID, dto.UpdateMemberRequest{Name: "X"})
		require.ErrorIs(t, err, ErrMemberNotFound)
	})
}

func TestDeleteMember(t *testing.T) {
	db := setupTestDB(t)
	owner := createTestUser(t, db, "sahip@ornek.com")
	other := createTestUser(t, db, "baskasi@ornek.com")
	meet := createMeetForMembers(t, owner.ID)
	svc := NewMemberService()

	member, err := svc.RegisterMember(context.Background(), dto.RegisterMemberRequest{
		Name: "Ayşe", Contact: "ayse@ornek.com", MeetUid: meet.Uid,
	})
	require.NoError(t, err)

	// Başkası silemez; sahibi siler; silinen tekrar bulunamaz.
	err = svc.DeleteMember(context.Background(), member.ID, other.ID)
	require.ErrorIs(t, err, ErrMemberNotFound)

	require.NoError(t, svc.DeleteMember(context.Background(), member.ID, owner.ID))

	_, err = svc.GetMemberForOwner(context.Background(), member.ID, owner.ID)
	require.ErrorIs(t, err, ErrMemberNotFound)

	// Silinen contact aynı buluşmaya yeniden kaydolabilir.
	_, err = svc.RegisterMember(context.Background(), dto.RegisterMemberRequest{
		Name: "Ayşe", Contact: "ayse@ornek.com", MeetUid: meet.Uid,
	})
	require.NoError(t, err)
}

func TestListMembers(t *testing.T) {
	db := setupTestDB(t)
	owner := createTestUser(t, db, "sahip@ornek.com")
	meet := createMeetForMembers(t, owner.ID)
	svc := NewMemberService()

	for _, contact := range []string{"a@ornek.com", "b@ornek.com"} {
		_, err := svc.RegisterMember(context.Background(), dto.RegisterMemberRequest{
			Name: "Katılımcı", Contact: contact, MeetUid: meet.Uid,
		})
		require.NoError(t, err)
	}

	members, err := svc.ListMembers(context.Background())
	require.NoError(t, err)
	require.Len(t, members, 2)
	// Liste ilişkili buluşma ve sahibini de taşır.
	assert.Equal(t, meet.Uid, members[0].Meet.Uid)
	assert.Equal(t, owner.ID, members[0].Meet.OwnerID)
}
