package permission

// CreatePermissionRequest represents the input for creating a new permission.
// Enabled defaults to true when omitted.
type CreatePermissionRequest struct {
	Name        string `json:"name" form:"name" binding:"required,min=1,max=100"`
	Slug        string `json:"slug" form:"slug" binding:"required,min=1,max=100"`
	Description string `json:"description" form:"description" binding:"required,max=255"`
	Enabled     *bool  `json:"enabled" form:"enabled"`
}

// UpdatePermissionRequest represents a partial update. Only fields present in
// the payload are merged; nil fields keep their stored values.
type UpdatePermissionRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=1,max=100"`
	Slug        *string `json:"slug" binding:"omitempty,min=1,max=100"`
	Description *string `json:"description" binding:"omitempty,max=255"`
	Enabled     *bool   `json:"enabled"`
	Deleted     *bool   `json:"deleted"`
}

// Fields returns the supplied fields as a column → value map for the
// repository's conditional update.
func (r UpdatePermissionRequest) Fields() map[string]any {
	fields := make(map[string]any)
	if r.Name != nil {
		fields["name"] = *r.Name
	}
	if r.Slug != nil {
		fields["slug"] = *r.Slug
	}
	if r.Description != nil {
		fields["description"] = *r.Description
	}
	if r.Enabled != nil {
		fields["enabled"] = *r.Enabled
	}
	if r.Deleted != nil {
		fields["deleted"] = *r.Deleted
	}
	return fields
}
