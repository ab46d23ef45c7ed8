package eligibility

import (
	"reflect"
	"testing"
)

func TestProfile_RemoveMissingIsNoop(t *testing.T) {
	p := NewProfile()
	p.RemoveMajor("BS-201")
	p.RemoveMinor("MN-1")
	p.RemoveSpecialization("SP-1")
	p.RemoveCompleted("I&CSCI31")

	if len(p.Majors())+len(p.Minors())+len(p.Specializations())+len(p.Completed()) != 0 {
		t.Fatalf("Expected empty profile, got %s", p)
	}
}

func TestProfile_AddRemove(t *testing.T) {
	p := NewProfile()
	p.AddMajor("BS-540")
	p.AddMajor("BS-201")
	p.AddMajor("BS-201")
	p.AddSpecialization("SP-1")
	p.RemoveMajor("BS-540")

	if !reflect.DeepEqual(p.Majors(), []string{"BS-201"}) {
		t.Errorf("Expected [BS-201], got %v", p.Majors())
	}
	if !reflect.DeepEqual(p.Specializations(), []string{"SP-1"}) {
		t.Errorf("Expected [SP-1], got %v", p.Specializations())
	}
}

func TestProfile_AddPrerequisiteRow(t *testing.T) {
	p := NewProfile()
	p.AddPrerequisiteRow([]string{"MATH2A"})
	p.AddPrerequisiteRow(nil)
	p.AddPrerequisite("MATH2A")

	if !reflect.DeepEqual(p.Completed(), []string{"MATH2A"}) {
		t.Fatalf("Expected [MATH2A], got %v", p.Completed())
	}
	if !p.HasCompleted("MATH2A") {
		t.Error("Expected MATH2A to be completed")
	}
}

func TestProfile_CloneIsIndependent(t *testing.T) {
	p := NewProfile()
	p.AddMajor("BS-201")

	c := p.Clone()
	c.AddMajor("BS-540")
	c.AddPrerequisite("I&CSCI31")

	if len(p.Majors()) != 1 || len(p.Completed()) != 0 {
		t.Fatalf("Expected original profile unchanged, got %s", p)
	}
}

func TestProfileRequest_Profile(t *testing.T) {
	req := ProfileRequest{
		Majors:    []string{"BS-201"},
		Minors:    []string{"MN-1"},
		Completed: []string{"I&CSCI31", "I&CSCI31"},
	}

	p := req.Profile()
	if !reflect.DeepEqual(p.Majors(), []string{"BS-201"}) ||
		!reflect.DeepEqual(p.Minors(), []string{"MN-1"}) ||
		!reflect.DeepEqual(p.Completed(), []string{"I&CSCI31"}) {
		t.Fatalf("Unexpected profile %s", p)
	}
}
