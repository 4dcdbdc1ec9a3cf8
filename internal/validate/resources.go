package validate

import (
	"github.com/avdeev/module-certification/internal/core/domain"
)

var moduleLevels = []string{"beginner", "intermediate", "advanced"}

var commentResourceTypes = []string{"module", "course", "note"}

// ModuleInput validates a raw module payload. Fields are checked in declared
// order and the first violation wins.
func ModuleInput(raw map[string]any) (*domain.ModuleRecord, error) {
	titleEn, err := Required("English Title", raw["titleEn"])
	if err != nil {
		return nil, err
	}
	if err := Length("English Title", titleEn, 3, 200); err != nil {
		return nil, err
	}

	descriptionEn, err := Required("English Description", raw["descriptionEn"])
	if err != nil {
		return nil, err
	}
	if err := Length("English Description", descriptionEn, 10, MaxStringLength); err != nil {
		return nil, err
	}

	code, err := Optional("Module Code", raw["code"], 2, 50)
	if err != nil {
		return nil, err
	}

	record := &domain.ModuleRecord{
		TitleEn:       titleEn,
		DescriptionEn: descriptionEn,
		Code:          code,
	}

	if raw["durationHours"] != nil {
		hours, err := Number("Duration Hours", raw["durationHours"], 0, 1000)
		if err != nil {
			return nil, err
		}
		record.DurationHours = &hours
	}

	if raw["level"] != nil {
		level, err := Enum("Level", raw["level"], moduleLevels)
		if err != nil {
			return nil, err
		}
		record.Level = &level
	}

	return record, nil
}

// CourseInput validates a raw course payload.
func CourseInput(raw map[string]any) (*domain.CourseRecord, error) {
	titleEn, err := Required("English Title", raw["titleEn"])
	if err != nil {
		return nil, err
	}
	if err := Length("English Title", titleEn, 3, 200); err != nil {
		return nil, err
	}

	descriptionEn, err := Optional("English Description", raw["descriptionEn"], 10, MaxStringLength)
	if err != nil {
		return nil, err
	}

	code, err := Optional("Course Code", raw["code"], 2, 50)
	if err != nil {
		return nil, err
	}

	moduleID, err := Optional("Module ID", raw["moduleId"], 1, 128)
	if err != nil {
		return nil, err
	}

	return &domain.CourseRecord{
		TitleEn:       titleEn,
		DescriptionEn: descriptionEn,
		Code:          code,
		ModuleID:      moduleID,
	}, nil
}

// CertificationRoundInput validates a raw round payload, including the
// cross-field rule that the due date falls strictly after the start date.
func CertificationRoundInput(raw map[string]any) (*domain.RoundRecord, error) {
	name, err := Required("Round Name", raw["name"])
	if err != nil {
		return nil, err
	}
	if err := Length("Round Name", name, 3, 200); err != nil {
		return nil, err
	}

	startDate, err := Date("Start Date", raw["startDate"])
	if err != nil {
		return nil, err
	}

	dueDate, err := Date("Due Date", raw["dueDate"])
	if err != nil {
		return nil, err
	}

	status := string(domain.RoundStatusDraft)
	if raw["status"] != nil {
		status, err = Enum("Status", raw["status"], domain.RoundStatusNames())
		if err != nil {
			return nil, err
		}
	}

	if !dueDate.After(startDate) {
		return nil, failf("Due Date", "Due date must be after start date")
	}

	return &domain.RoundRecord{
		Name:      name,
		Status:    domain.RoundStatus(status),
		StartDate: startDate,
		DueDate:   dueDate,
	}, nil
}

// CommentInput validates a raw comment payload.
func CommentInput(raw map[string]any) (*domain.CommentRecord, error) {
	resourceType, err := Enum("Resource Type", raw["resourceType"], commentResourceTypes)
	if err != nil {
		return nil, err
	}

	resourceID, err := Required("Resource ID", raw["resourceId"])
	if err != nil {
		return nil, err
	}

	text, err := Required("Comment", raw["text"])
	if err != nil {
		return nil, err
	}
	if err := Length("Comment", text, 1, 2000); err != nil {
		return nil, err
	}

	return &domain.CommentRecord{
		ResourceType: resourceType,
		ResourceID:   resourceID,
		Text:         text,
	}, nil
}

// UserInput validates a raw user payload against the email domain allow-list.
func UserInput(raw map[string]any, allowedDomains []string) (*domain.UserRecord, error) {
	email, err := Email("Email", raw["email"], allowedDomains)
	if err != nil {
		return nil, err
	}

	displayName, err := Required("Display Name", raw["displayName"])
	if err != nil {
		return nil, err
	}
	if err := Length("Display Name", displayName, 2, 100); err != nil {
		return nil, err
	}

	role, err := Enum("Role", raw["role"], domain.RoleNames())
	if err != nil {
		return nil, err
	}

	active := true
	if v, ok := raw["active"].(bool); ok {
		active = v
	}

	return &domain.UserRecord{
		Email:       email,
		DisplayName: displayName,
		Role:        domain.Role(role),
		Active:      active,
	}, nil
}

// NoteInput validates a raw note payload. Title and content minimums apply
// after trimming; the title is checked first.
func NoteInput(raw map[string]any) (*domain.NoteRecord, error) {
	title, err := Required("Title", raw["title"])
	if err != nil {
		return nil, err
	}
	if err := Length("Title", title, 3, 200); err != nil {
		return nil, err
	}

	content, err := Required("Content", raw["content"])
	if err != nil {
		return nil, err
	}
	if err := Length("Content", content, 10, MaxStringLength); err != nil {
		return nil, err
	}

	return &domain.NoteRecord{Title: title, Content: content}, nil
}
