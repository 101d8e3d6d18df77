package model

import "testing"

func fieldsOf[T Taxonomy, PT TaxonomyPtr[T]](entry *T) *TaxonomyFields {
	return PT(entry).Fields()
}

func TestTaxonomyAccessors(t *testing.T) {
	name := ExamName{TaxonomyFields: TaxonomyFields{Name: "WAEC", IsActivated: true}}
	if got := fieldsOf[ExamName, *ExamName](&name).Name; got != "WAEC" {
		t.Errorf("Expected WAEC, got %s", got)
	}

	subject := ExamSubject{}
	fieldsOf[ExamSubject, *ExamSubject](&subject).Name = "Mathematics"
	if subject.Name != "Mathematics" {
		t.Errorf("Fields() must point at the embedded struct, got %q", subject.Name)
	}

	year := ExamYear{}
	year.ID = 9
	if got := (&year).Meta().ID; got != 9 {
		t.Errorf("Expected ID 9, got %d", got)
	}
}

func TestUserIsAdmin(t *testing.T) {
	admin := User{Role: "admin"}
	if !admin.IsAdmin() {
		t.Error("Expected admin role to be admin")
	}

	user := User{Role: "user"}
	if user.IsAdmin() {
		t.Error("Expected user role to not be admin")
	}
}
