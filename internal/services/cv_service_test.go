package services

import (
	"context"
	"testing"
	"time"

	"github.com/justsurfingit/habte-job-portal/internal/apperr"
	"github.com/justsurfingit/habte-job-portal/internal/dtos"
	"github.com/justsurfingit/habte-job-portal/internal/models"
)

func cvRequest(fullName string) *dtos.CVRequest {
	summary := "Backend engineer with five years of Go."
	return &dtos.CVRequest{
		Template: models.TemplateProfessional,
		PersonalInfo: &models.PersonalInfo{
			FullName: fullName,
			JobTitle: "Software Engineer",
			Email:    "abebe@example.com",
			Phone:    "+251911000000",
		},
		ProfessionalSummary: &summary,
		Skills:              []models.Skill{{Name: "Go"}, {Name: "SQL", Level: models.SkillExpert}},
		Languages:           []models.Language{{Name: "Amharic"}},
	}
}

func TestCreateCV(t *testing.T) {
	f := newFixture(t, time.Hour)
	owner := f.register(t, "seeker@habte.et", models.RoleJobSeeker)

	cv, err := f.cvs.CreateCV(context.Background(), owner, cvRequest("Abebe Kebede"))
	if err != nil {
		t.Fatalf("CreateCV: %v", err)
	}
	if !cv.IsPublic || cv.PaymentStatus != models.PaymentPending {
		t.Errorf("IsPublic/PaymentStatus = %v/%q", cv.IsPublic, cv.PaymentStatus)
	}
	if cv.UserID != owner.ID {
		t.Errorf("UserID = %q, want %q", cv.UserID, owner.ID)
	}
	skills := []models.Skill(cv.Skills)
	if skills[0].Level != models.SkillIntermediate || skills[1].Level != models.SkillExpert {
		t.Errorf("skill levels = %v", skills)
	}
	if langs := []models.Language(cv.Languages); langs[0].Level != models.LanguageConversational {
		t.Errorf("language level = %q, want conversational", langs[0].Level)
	}
	if n := f.payments.Pending(); n != 1 {
		t.Errorf("Pending() = %d, want 1", n)
	}
}

func TestCreateCV_DuplicateNameConflict(t *testing.T) {
	f := newFixture(t, time.Hour)
	owner := f.register(t, "seeker@habte.et", models.RoleJobSeeker)
	other := f.register(t, "other@habte.et", models.RoleJobSeeker)
	ctx := context.Background()

	if _, err := f.cvs.CreateCV(ctx, owner, cvRequest("Abebe Kebede")); err != nil {
		t.Fatalf("CreateCV: %v", err)
	}
	if _, err := f.cvs.CreateCV(ctx, owner, cvRequest(" Abebe Kebede ")); !apperr.Is(err, apperr.KindConflict) {
		t.Errorf("same owner, same name: err = %v, want conflict", err)
	}
	if _, err := f.cvs.CreateCV(ctx, other, cvRequest("Abebe Kebede")); err != nil {
		t.Errorf("other owner, same name: %v", err)
	}
	if n := f.payments.Pending(); n != 2 {
		t.Errorf("Pending() = %d, want 2", n)
	}
}

func TestCreateCV_MissingRequired(t *testing.T) {
	f := newFixture(t, time.Hour)
	owner := f.register(t, "seeker@habte.et", models.RoleJobSeeker)

	req := cvRequest("No Summary")
	req.ProfessionalSummary = nil
	if _, err := f.cvs.CreateCV(context.Background(), owner, req); !apperr.Is(err, apperr.KindValidation) {
		t.Errorf("err = %v, want validation", err)
	}
}

func TestGetCV_PrivateVisibility(t *testing.T) {
	f := newFixture(t, time.Hour)
	owner := f.register(t, "seeker@habte.et", models.RoleJobSeeker)
	stranger := f.register(t, "stranger@habte.et", models.RoleEmployer)
	ctx := context.Background()

	cv, err := f.cvs.CreateCV(ctx, owner, cvRequest("Abebe Kebede"))
	if err != nil {
		t.Fatalf("CreateCV: %v", err)
	}
	if _, err := f.cvs.GetCV(ctx, "", cv.ShareableLink); err != nil {
		t.Errorf("public CV by link, anonymous: %v", err)
	}

	updated, err := f.cvs.SetVisibility(ctx, owner, cv.ID.String(), false)
	if err != nil {
		t.Fatalf("SetVisibility: %v", err)
	}
	if updated.IsPublic {
		t.Fatal("IsPublic = true after hiding")
	}

	if _, err := f.cvs.GetCV(ctx, "", cv.ShareableLink); !apperr.Is(err, apperr.KindForbidden) {
		t.Errorf("private CV, anonymous: err = %v, want forbidden", err)
	}
	if _, err := f.cvs.GetCV(ctx, stranger.ID, cv.ID.String()); !apperr.Is(err, apperr.KindForbidden) {
		t.Errorf("private CV, stranger: err = %v, want forbidden", err)
	}
	if got, err := f.cvs.GetCV(ctx, owner.ID, cv.ID.String()); err != nil || got.ID != cv.ID {
		t.Errorf("private CV, owner: %v, %v", got, err)
	}
	if _, err := f.cvs.SetVisibility(ctx, stranger, cv.ID.String(), true); !apperr.Is(err, apperr.KindForbidden) {
		t.Errorf("SetVisibility by stranger: err = %v, want forbidden", err)
	}
}

func TestUpdateCV_PartialAndOwnerOnly(t *testing.T) {
	f := newFixture(t, time.Hour)
	owner := f.register(t, "seeker@habte.et", models.RoleJobSeeker)
	stranger := f.register(t, "stranger@habte.et", models.RoleJobSeeker)
	ctx := context.Background()

	cv, err := f.cvs.CreateCV(ctx, owner, cvRequest("Abebe Kebede"))
	if err != nil {
		t.Fatalf("CreateCV: %v", err)
	}

	summary := "Now leading a platform team."
	req := &dtos.CVRequest{ProfessionalSummary: &summary}
	if _, err := f.cvs.UpdateCV(ctx, stranger, cv.ID.String(), req); !apperr.Is(err, apperr.KindForbidden) {
		t.Errorf("UpdateCV by stranger: err = %v, want forbidden", err)
	}

	got, err := f.cvs.UpdateCV(ctx, owner, cv.ID.String(), req)
	if err != nil {
		t.Fatalf("UpdateCV: %v", err)
	}
	if got.ProfessionalSummary != summary {
		t.Errorf("ProfessionalSummary = %q", got.ProfessionalSummary)
	}
	if got.PersonalInfo.FullName != "Abebe Kebede" || len(got.Skills) != 2 {
		t.Errorf("untouched fields changed: %+v", got)
	}
	if got.PaymentStatus != models.PaymentPending {
		t.Errorf("PaymentStatus = %q, want pending", got.PaymentStatus)
	}
}

func TestDeleteCV(t *testing.T) {
	f := newFixture(t, time.Hour)
	owner := f.register(t, "seeker@habte.et", models.RoleJobSeeker)
	ctx := context.Background()

	cv, err := f.cvs.CreateCV(ctx, owner, cvRequest("Abebe Kebede"))
	if err != nil {
		t.Fatalf("CreateCV: %v", err)
	}
	if err := f.cvs.DeleteCV(ctx, owner, cv.ID.String()); err != nil {
		t.Fatalf("DeleteCV: %v", err)
	}
	if n := f.payments.Pending(); n != 0 {
		t.Errorf("Pending() = %d, want 0", n)
	}
	mine, err := f.cvs.ListOwnerCVs(ctx, owner)
	if err != nil || len(mine) != 0 {
		t.Errorf("ListOwnerCVs = %v, %v", mine, err)
	}
	if _, err := f.cvs.CreateCV(ctx, owner, cvRequest("Abebe Kebede")); err != nil {
		t.Errorf("recreate after delete: %v", err)
	}
}

func TestCVPayment_Completes(t *testing.T) {
	f := newFixture(t, 20*time.Millisecond)
	owner := f.register(t, "seeker@habte.et", models.RoleJobSeeker)

	cv, err := f.cvs.CreateCV(context.Background(), owner, cvRequest("Abebe Kebede"))
	if err != nil {
		t.Fatalf("CreateCV: %v", err)
	}
	waitFor(t, "cv payment", func() bool {
		var got models.CV
		if err := f.db.First(&got, "id = ?", cv.ID).Error; err != nil {
			t.Fatalf("load cv: %v", err)
		}
		return got.PaymentStatus == models.PaymentCompleted && got.TelebirrTransactionID != nil
	})
}

func TestGetCV_IncludesOwnerCard(t *testing.T) {
	f := newFixture(t, time.Hour)
	owner := f.register(t, "seeker@habte.et", models.RoleJobSeeker)
	ctx := context.Background()

	if _, err := f.users.UpdateProfile(ctx, owner, dtos.ProfileUpdateRequest{Phone: "+251911223344", Location: "Gondar"}); err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}
	cv, err := f.cvs.CreateCV(ctx, owner, cvRequest("Abebe Kebede"))
	if err != nil {
		t.Fatalf("CreateCV: %v", err)
	}

	want := models.OwnerCard{ID: owner.ID, Name: "Test User", Email: "seeker@habte.et", Phone: "+251911223344", Location: "Gondar"}
	for _, tc := range []struct {
		name       string
		requester  models.ID
		identifier string
	}{
		{"anonymous by link", "", cv.ShareableLink},
		{"owner by id", owner.ID, cv.ID.String()},
	} {
		got, err := f.cvs.GetCV(ctx, tc.requester, tc.identifier)
		if err != nil {
			t.Fatalf("%s: GetCV: %v", tc.name, err)
		}
		if got.Owner == nil || *got.Owner != want {
			t.Errorf("%s: Owner = %+v, want %+v", tc.name, got.Owner, want)
		}
	}
}

func TestCVFullName_BlankRejected(t *testing.T) {
	f := newFixture(t, time.Hour)
	owner := f.register(t, "seeker@habte.et", models.RoleJobSeeker)
	ctx := context.Background()

	if _, err := f.cvs.CreateCV(ctx, owner, cvRequest("  ")); !apperr.Is(err, apperr.KindValidation) {
		t.Errorf("CreateCV(blank name) err = %v, want validation", err)
	}

	cv, err := f.cvs.CreateCV(ctx, owner, cvRequest("Abebe Kebede"))
	if err != nil {
		t.Fatalf("CreateCV: %v", err)
	}
	req := &dtos.CVRequest{PersonalInfo: &models.PersonalInfo{FullName: " ", JobTitle: "x", Email: "x", Phone: "x"}}
	if _, err := f.cvs.UpdateCV(ctx, owner, cv.ID.String(), req); !apperr.Is(err, apperr.KindValidation) {
		t.Errorf("UpdateCV(blank name) err = %v, want validation", err)
	}
}
