package model

import (
	"gorm.io/gorm"
)

// TaxonomyFields is the shape shared by every exam classification entity.
// The entities differ only in table name, so repositories and services over
// them are generic.
type TaxonomyFields struct {
	Name        string `gorm:"column:name;not null"`
	Description string `gorm:"column:description;not null"`
	IsActivated bool   `gorm:"column:is_activated;default:true;not null"`
}

// ExamName is an examination body (e.g. WAEC, JAMB).
type ExamName struct {
	gorm.Model
	TaxonomyFields
}

// ExamType is a sitting category within an exam body.
type ExamType struct {
	gorm.Model
	TaxonomyFields
}

// ExamPaperType distinguishes paper variants (objective, theory).
type ExamPaperType struct {
	gorm.Model
	TaxonomyFields
}

// ExamYear is the year a paper was set.
type ExamYear struct {
	gorm.Model
	TaxonomyFields
}

// ExamSubject is the subject a paper covers.
type ExamSubject struct {
	gorm.Model
	TaxonomyFields
}

func (e *ExamName) Meta() *gorm.Model { return &e.Model }
func (e *ExamName) Fields() *TaxonomyFields { return &e.TaxonomyFields }
func (e *ExamType) Meta() *gorm.Model { return &e.Model }
func (e *ExamType) Fields() *TaxonomyFields { return &e.TaxonomyFields }
func (e *ExamPaperType) Meta() *gorm.Model { return &e.Model }
func (e *ExamPaperType) Fields() *TaxonomyFields { return &e.TaxonomyFields }
func (e *ExamYear) Meta() *gorm.Model { return &e.Model }
func (e *ExamYear) Fields() *TaxonomyFields { return &e.TaxonomyFields }
func (e *ExamSubject) Meta() *gorm.Model { return &e.Model }
func (e *ExamSubject) Fields() *TaxonomyFields { return &e.TaxonomyFields }

// Taxonomy constrains the generic repositories and services to the exam
// classification entities.
type Taxonomy interface {
	ExamName | ExamType | ExamPaperType | ExamYear | ExamSubject
}

// TaxonomyPtr gives generic code access to the shared columns through a
// pointer to any taxonomy entity.
type TaxonomyPtr[T Taxonomy] interface {
	*T
	Meta() *gorm.Model
	Fields() *TaxonomyFields
}
