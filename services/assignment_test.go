package services

import (
	"database/sql/driver"
	"regexp"
	"strings"
	"testing"
)

func activeAssignmentRow(name, email string) *queryStep {
	return &queryStep{
		kind:    kindQuery,
		pattern: regexp.MustCompile("SELECT .* FROM `candidate_assignments` WHERE candidate_id = \\? AND is_active = 1"),
		columns: []string{"assignment_id", "candidate_id", "interviewer_name", "interviewer_email", "status", "is_active"},
		rows: [][]driver.Value{
			{int64(7), int64(42), name, email, "pending", true},
		},
	}
}

func scheduledInterviewCount(n int64) *queryStep {
	return &queryStep{
		kind:    kindQuery,
		pattern: regexp.MustCompile("SELECT count\\(\\*\\) FROM `interviews`"),
		columns: []string{"count(*)"},
		rows:    [][]driver.Value{{n}},
	}
}

func TestAssignInterviewerDeactivatesPriorBeforeInsert(t *testing.T) {
	steps := []*queryStep{
		{
			kind:    kindExec,
			pattern: regexp.MustCompile("UPDATE `candidate_assignments` SET .*`is_active`=.* WHERE candidate_id = \\? AND is_active = 1"),
			result:  scriptedResult{rowsAffected: 1},
		},
		{
			kind:    kindExec,
			pattern: regexp.MustCompile("INSERT INTO `candidate_assignments`"),
			result:  scriptedResult{lastInsertID: 11, rowsAffected: 1},
		},
	}

	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	actor := Actor{UserID: 5, Email: "staff@company.example"}
	assignment, err := AssignInterviewer(db, 42, "Mina Okafor", "mina@company.example", "pending", actor, nil)
	if err != nil {
		t.Fatalf("AssignInterviewer returned error: %v", err)
	}
	if assignment.AssignmentID != 11 {
		t.Errorf("AssignmentID = %d, want 11", assignment.AssignmentID)
	}
	if !assignment.IsActive {
		t.Error("new assignment should be active")
	}
	if err := state.verifyComplete(); err != nil {
		t.Error(err)
	}
}

func TestReassignInterviewerRejectsScheduledInterview(t *testing.T) {
	// A scheduled interview still points at the old interviewer; swapping the
	// assignment here would leave the two out of step, so the call must fail
	// before any write.
	steps := []*queryStep{
		activeAssignmentRow("Mina Okafor", "mina@company.example"),
		scheduledInterviewCount(1),
	}

	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	actor := Actor{UserID: 5, Email: "staff@company.example"}
	_, err := ReassignInterviewer(db, 42, "Theo Brandt", "theo@company.example", actor, "")
	if err == nil {
		t.Fatal("expected error when a scheduled interview exists")
	}
	if !strings.Contains(err.Error(), "scheduled interview") {
		t.Errorf("unexpected error: %v", err)
	}
	if err := state.verifyComplete(); err != nil {
		t.Error(err)
	}
}

func TestReassignInterviewerRejectsSameInterviewer(t *testing.T) {
	steps := []*queryStep{
		activeAssignmentRow("Mina Okafor", "mina@company.example"),
	}

	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	actor := Actor{UserID: 5, Email: "staff@company.example"}
	_, err := ReassignInterviewer(db, 42, "Mina Okafor", "mina@company.example", actor, "")
	if err == nil {
		t.Fatal("expected error when reassigning to the current interviewer")
	}
	if err := state.verifyComplete(); err != nil {
		t.Error(err)
	}
}

func TestReassignInterviewerSupersedesPrior(t *testing.T) {
	steps := []*queryStep{
		activeAssignmentRow("Mina Okafor", "mina@company.example"),
		scheduledInterviewCount(0),
		{
			kind:    kindExec,
			pattern: regexp.MustCompile("UPDATE `candidate_assignments` SET .*`is_active`=.* WHERE candidate_id = \\? AND is_active = 1"),
			result:  scriptedResult{rowsAffected: 1},
		},
		{
			kind:    kindExec,
			pattern: regexp.MustCompile("INSERT INTO `candidate_assignments`"),
			result:  scriptedResult{lastInsertID: 12, rowsAffected: 1},
		},
	}

	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	actor := Actor{UserID: 5, Email: "staff@company.example"}
	assignment, err := ReassignInterviewer(db, 42, "Theo Brandt", "theo@company.example", actor, "availability conflict")
	if err != nil {
		t.Fatalf("ReassignInterviewer returned error: %v", err)
	}
	if assignment.Note == nil || *assignment.Note != "Reassigned from Mina Okafor: availability conflict" {
		t.Errorf("unexpected note: %v", assignment.Note)
	}
	if assignment.InterviewerEmail != "theo@company.example" {
		t.Errorf("InterviewerEmail = %s", assignment.InterviewerEmail)
	}
	if err := state.verifyComplete(); err != nil {
		t.Error(err)
	}
}
