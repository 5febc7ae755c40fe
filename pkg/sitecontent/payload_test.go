package sitecontent_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pixelsandpetals/content-service/pkg/sitecontent"
)

func TestValidatePayload(t *testing.T) {
	tests := []struct {
		name        string
		contentType sitecontent.ContentType
		payload     map[string]interface{}
		wantErr     error
	}{
		{
			name:        "nil payload is valid",
			contentType: sitecontent.ContentTypeProject,
			payload:     nil,
		},
		{
			name:        "valid project payload",
			contentType: sitecontent.ContentTypeProject,
			payload: map[string]interface{}{
				"hero":         map[string]interface{}{"image": "/img/hero.jpg"},
				"overview":     "A garden planner for small spaces.",
				"technologies": []interface{}{"Go", "DynamoDB"},
				"features":     []interface{}{"offline mode"},
				"results":      map[string]interface{}{"metrics": []interface{}{"2x signups"}},
				"gallery":      []interface{}{"/img/1.jpg"},
			},
		},
		{
			name:        "unknown keys pass through",
			contentType: sitecontent.ContentTypePage,
			payload: map[string]interface{}{
				"custom_widget": 42,
			},
		},
		{
			name:        "project overview must be a string",
			contentType: sitecontent.ContentTypeProject,
			payload: map[string]interface{}{
				"overview": []interface{}{"not", "a", "string"},
			},
			wantErr: sitecontent.ErrInvalidPayload,
		},
		{
			name:        "project gallery must be a list",
			contentType: sitecontent.ContentTypeProject,
			payload: map[string]interface{}{
				"gallery": "single.jpg",
			},
			wantErr: sitecontent.ErrInvalidPayload,
		},
		{
			name:        "team member photo must be an object",
			contentType: sitecontent.ContentTypeTeamMember,
			payload: map[string]interface{}{
				"photo": "/img/me.jpg",
			},
			wantErr: sitecontent.ErrInvalidPayload,
		},
		{
			name:        "nil section values are ignored",
			contentType: sitecontent.ContentTypePost,
			payload: map[string]interface{}{
				"body": nil,
			},
		},
		{
			name:        "unknown content type",
			contentType: sitecontent.ContentType("article"),
			payload:     map[string]interface{}{},
			wantErr:     sitecontent.ErrInvalidContentType,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := sitecontent.ValidatePayload(tt.contentType, tt.payload)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
