package services

import (
	"regexp"
	"testing"
	"time"

	"applicant-tracking-api/models"
)

func TestSubmitProposalRejectsIllegalStageWithoutInsert(t *testing.T) {
	// No scripted steps: a candidate outside the offer stage must be rejected
	// before the proposal row is inserted.
	db, state, cleanup := newScriptedGormDB(t, nil)
	defer cleanup()

	candidate := &models.Candidate{CandidateID: 42, Status: models.StatusNew}
	proposal := &models.JobProposal{CandidateID: 42, Position: "Backend Engineer", Salary: 85000}
	if err := SubmitProposal(db, candidate, proposal); err == nil {
		t.Fatal("expected error for candidate outside the offer stage")
	}
	if err := state.verifyComplete(); err != nil {
		t.Error(err)
	}
}

func TestSubmitProposalInsertsAtOfferStage(t *testing.T) {
	steps := []*queryStep{
		{
			kind:    kindExec,
			pattern: regexp.MustCompile("INSERT INTO `job_proposals`"),
			result:  scriptedResult{lastInsertID: 9, rowsAffected: 1},
		},
	}

	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	candidate := &models.Candidate{CandidateID: 42, Status: models.StatusToOffer}
	proposal := &models.JobProposal{CandidateID: 42, Position: "Backend Engineer", Salary: 85000, OfferStatus: "pending"}
	if err := SubmitProposal(db, candidate, proposal); err != nil {
		t.Fatalf("SubmitProposal returned error: %v", err)
	}
	if proposal.ProposalID != 9 {
		t.Errorf("ProposalID = %d, want 9", proposal.ProposalID)
	}
	if err := state.verifyComplete(); err != nil {
		t.Error(err)
	}
}

func TestApproveProposalStampsManager(t *testing.T) {
	steps := []*queryStep{
		{
			kind:    kindExec,
			pattern: regexp.MustCompile("UPDATE `job_proposals` SET `hr_manager_approved`=.*`hr_manager_rejection_notes`=.* WHERE proposal_id = \\?"),
			result:  scriptedResult{rowsAffected: 1},
		},
	}

	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	notes := "salary above band"
	proposal := &models.JobProposal{ProposalID: 9, HRManagerRejectionNotes: &notes}
	actor := Actor{UserID: 3, Email: "manager@company.example"}
	if err := ApproveProposal(db, proposal, actor); err != nil {
		t.Fatalf("ApproveProposal returned error: %v", err)
	}
	if !proposal.HRManagerApproved {
		t.Error("HRManagerApproved should be true")
	}
	if proposal.HRManagerApprovedBy == nil || *proposal.HRManagerApprovedBy != 3 {
		t.Errorf("HRManagerApprovedBy = %v, want 3", proposal.HRManagerApprovedBy)
	}
	if proposal.HRManagerApprovedAt == nil {
		t.Error("HRManagerApprovedAt should be set")
	}
	if proposal.HRManagerRejectionNotes != nil {
		t.Error("HRManagerRejectionNotes should be cleared")
	}
	if err := state.verifyComplete(); err != nil {
		t.Error(err)
	}
}

func TestAcknowledgeProposalRequiresManagerApproval(t *testing.T) {
	db, state, cleanup := newScriptedGormDB(t, nil)
	defer cleanup()

	proposal := &models.JobProposal{ProposalID: 9, HRManagerApproved: false}
	actor := Actor{UserID: 4, Email: "interviewer@company.example"}
	if err := AcknowledgeProposal(db, proposal, actor); err == nil {
		t.Fatal("expected error before HR Manager approval")
	}
	if err := state.verifyComplete(); err != nil {
		t.Error(err)
	}
}

func TestRejectProposalByInterviewerRollsBackManagerApproval(t *testing.T) {
	// The second-stage rejection must also undo the first stage, so the
	// edited offer passes both stages again. GORM emits map columns in
	// sorted order, so the statement shape is stable.
	steps := []*queryStep{
		{
			kind:    kindExec,
			pattern: regexp.MustCompile("UPDATE `job_proposals` SET `hr_manager_approved`=.*`hr_manager_approved_at`=.*`hr_manager_approved_by`=.*`interviewer_rejection_notes`=.* WHERE proposal_id = \\?"),
			result:  scriptedResult{rowsAffected: 1},
		},
	}

	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	approvedBy := 3
	approvedAt := time.Now()
	proposal := &models.JobProposal{
		ProposalID:          9,
		HRManagerApproved:   true,
		HRManagerApprovedBy: &approvedBy,
		HRManagerApprovedAt: &approvedAt,
	}
	if err := RejectProposalByInterviewer(db, proposal, "start date too early"); err != nil {
		t.Fatalf("RejectProposalByInterviewer returned error: %v", err)
	}
	if proposal.HRManagerApproved {
		t.Error("HRManagerApproved should be rolled back")
	}
	if proposal.HRManagerApprovedBy != nil || proposal.HRManagerApprovedAt != nil {
		t.Error("HRManagerApprovedBy/At should be cleared")
	}
	if proposal.InterviewerRejectionNotes == nil || *proposal.InterviewerRejectionNotes != "start date too early" {
		t.Errorf("InterviewerRejectionNotes = %v", proposal.InterviewerRejectionNotes)
	}
	if err := state.verifyComplete(); err != nil {
		t.Error(err)
	}
}

func TestResubmitProposalResetsBothApprovalStages(t *testing.T) {
	steps := []*queryStep{
		{
			kind: kindExec,
			pattern: regexp.MustCompile("UPDATE `job_proposals` SET .*`hr_manager_approved`=.*`hr_manager_rejection_notes`=.*" +
				"`interviewer_acknowledged`=.*`interviewer_rejection_notes`=.*`offer_status`=.* WHERE proposal_id = \\?"),
			result: scriptedResult{rowsAffected: 1},
		},
	}

	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	approvedBy := 3
	approvedAt := time.Now()
	managerNotes := "salary above band"
	interviewerNotes := "start date too early"
	proposal := &models.JobProposal{
		ProposalID:                9,
		OfferStatus:               "pending",
		HRManagerApproved:         true,
		HRManagerApprovedBy:       &approvedBy,
		HRManagerApprovedAt:       &approvedAt,
		HRManagerRejectionNotes:   &managerNotes,
		InterviewerRejectionNotes: &interviewerNotes,
	}
	terms := ProposalTerms{Position: "Backend Engineer", Salary: 90000}
	if err := ResubmitProposal(db, proposal, terms); err != nil {
		t.Fatalf("ResubmitProposal returned error: %v", err)
	}
	if proposal.HRManagerApproved || proposal.InterviewerAcknowledged {
		t.Error("both approval flags should be reset")
	}
	if proposal.HRManagerApprovedBy != nil || proposal.HRManagerApprovedAt != nil {
		t.Error("HR Manager approval stamps should be cleared")
	}
	if proposal.HRManagerRejectionNotes != nil || proposal.InterviewerRejectionNotes != nil {
		t.Error("both rejection-note fields should be cleared")
	}
	if proposal.OfferStatus != "pending" {
		t.Errorf("OfferStatus = %s, want pending", proposal.OfferStatus)
	}
	if proposal.Position != "Backend Engineer" || proposal.Salary != 90000 {
		t.Errorf("terms not applied: %s %.0f", proposal.Position, proposal.Salary)
	}
	if err := state.verifyComplete(); err != nil {
		t.Error(err)
	}
}
