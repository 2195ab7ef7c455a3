package orchestrators

import (
	"context"
	"testing"
	"time"

	"opsdesk/internal/domain/template"
)

func TestExecuteCreateTemplate(t *testing.T) {
	tests := []struct {
		name    string
		input   CreateTemplateInput
		wantErr bool
	}{
		{
			name: "valid email template",
			input: CreateTemplateInput{
				Name:     "Weekly Update",
				Category: template.CategoryEmail,
				Subject:  "Update for {{client_name}}",
				Content:  "Hi {{contact_name}}",
			},
		},
		{
			name: "report template",
			input: CreateTemplateInput{
				Name:         "EOD Report",
				Category:     template.CategoryReport,
				Content:      "Wins: {{wins}}",
				ReportFields: []string{"wins"},
			},
		},
		{
			name: "email without subject rejected",
			input: CreateTemplateInput{
				Name:     "Weekly Update",
				Category: template.CategoryEmail,
				Content:  "Hi",
			},
			wantErr: true,
		},
		{
			name:    "unknown category rejected",
			input:   CreateTemplateInput{Name: "X", Category: "memo", Content: "y"},
			wantErr: true,
		},
		{
			name:    "empty content rejected",
			input:   CreateTemplateInput{Name: "X", Category: template.CategoryMessage, Content: "  "},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newMockTemplateStore()
			got, err := ExecuteCreateTemplate(context.Background(), tt.input, CreateTemplateDeps{
				TemplateStore: store,
				GenerateID:    fixedID,
				Now:           fixedNow,
			})
			if (err != nil) != tt.wantErr {
				t.Fatalf("ExecuteCreateTemplate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if !got.CreatedAt.Equal(fixedTime) || !got.UpdatedAt.Equal(fixedTime) {
				t.Errorf("stamps = %v / %v, want both %v", got.CreatedAt, got.UpdatedAt, fixedTime)
			}
		})
	}
}

func TestExecuteUpdateTemplate_TouchesUpdatedAtOnly(t *testing.T) {
	created := fixedTime.Add(-30 * 24 * time.Hour)
	store := newMockTemplateStore()
	store.templates["tpl1"] = template.Template{
		ID: "tpl1", Name: "EOD Report", Category: template.CategoryReport,
		Content: "Wins: {{wins}}", CreatedAt: created, UpdatedAt: created,
	}

	got, err := ExecuteUpdateTemplate(context.Background(), UpdateTemplateInput{
		TemplateID: "tpl1",
		Name:       "End of Day Report",
		Category:   template.CategoryReport,
		Content:    "Wins: {{wins}}\nBlockers: {{blockers}}",
	}, UpdateTemplateDeps{TemplateStore: store, Now: fixedNow})
	if err != nil {
		t.Fatalf("ExecuteUpdateTemplate() error = %v", err)
	}

	if !got.CreatedAt.Equal(created) {
		t.Errorf("CreatedAt = %v, want original %v", got.CreatedAt, created)
	}
	if !got.UpdatedAt.Equal(fixedTime) {
		t.Errorf("UpdatedAt = %v, want %v", got.UpdatedAt, fixedTime)
	}
}

func TestExecuteDeleteTemplate(t *testing.T) {
	store := newMockTemplateStore()
	store.templates["tpl1"] = template.Template{
		ID: "tpl1", Name: "EOD Report", Category: template.CategoryReport, Content: "x",
	}

	if err := ExecuteDeleteTemplate(context.Background(), DeleteTemplateInput{TemplateID: "tpl1"},
		DeleteTemplateDeps{TemplateStore: store}); err != nil {
		t.Fatalf("ExecuteDeleteTemplate() error = %v", err)
	}
	if len(store.templates) != 0 {
		t.Error("template row still present")
	}
	if err := ExecuteDeleteTemplate(context.Background(), DeleteTemplateInput{TemplateID: "tpl1"},
		DeleteTemplateDeps{TemplateStore: store}); err == nil {
		t.Fatal("expected error deleting a missing template")
	}
}
