package testimonials

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/CivicAgenda/CA-Backend/internal/db"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// ListHandler serves active testimonials in display order.
func ListHandler(w http.ResponseWriter, r *http.Request) {
	var items []Testimonial
	err := db.DB.Where("is_active = ?", true).Order("display_order asc").Find(&items).Error
	if err != nil {
		http.Error(w, "DB error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Cache-Control", "public, max-age=300")
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(items)
}

type testimonialInput struct {
	Name         string `json:"name"`
	Profession   string `json:"profession"`
	Testimonial  string `json:"testimonial"`
	ImageURL     string `json:"image_url"`
	LinkedinURL  string `json:"linkedin_url"`
	DisplayOrder *int   `json:"display_order"`
	IsActive     *bool  `json:"is_active"`
}

func CreateHandler(w http.ResponseWriter, r *http.Request) {
	var input testimonialInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if strings.TrimSpace(input.Name) == "" || strings.TrimSpace(input.Testimonial) == "" {
		http.Error(w, "Name and testimonial are required", http.StatusBadRequest)
		return
	}

	t := Testimonial{
		ID:          uuid.New(),
		Name:        input.Name,
		Profession:  input.Profession,
		Testimonial: input.Testimonial,
		ImageURL:    input.ImageURL,
		LinkedinURL: input.LinkedinURL,
		IsActive:    true,
	}
	if input.DisplayOrder != nil {
		t.DisplayOrder = *input.DisplayOrder
	}
	if input.IsActive != nil {
		t.IsActive = *input.IsActive
	}

	if err := db.DB.Create(&t).Error; err != nil {
		http.Error(w, "Failed to create testimonial", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(t)
}

func UpdateHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := uuid.Parse(id); err != nil {
		http.Error(w, "Invalid testimonial id", http.StatusBadRequest)
		return
	}

	var t Testimonial
	if err := db.DB.First(&t, "id = ?", id).Error; err != nil {
		http.Error(w, "Testimonial not found", http.StatusNotFound)
		return
	}

	var input testimonialInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	updates := map[string]interface{}{}
	if input.Name != "" {
		updates["name"] = input.Name
	}
	if input.Profession != "" {
		updates["profession"] = input.Profession
	}
	if input.Testimonial != "" {
		updates["testimonial"] = input.Testimonial
	}
	if input.ImageURL != "" {
		updates["image_url"] = input.ImageURL
	}
	if input.LinkedinURL != "" {
		updates["linkedin_url"] = input.LinkedinURL
	}
	if input.DisplayOrder != nil {
		updates["display_order"] = *input.DisplayOrder
	}
	if input.IsActive != nil {
		updates["is_active"] = *input.IsActive
	}

	if len(updates) == 0 {
		http.Error(w, "No fields to update", http.StatusBadRequest)
		return
	}

	if err := db.DB.Model(&t).Updates(updates).Error; err != nil {
		http.Error(w, "Failed to update testimonial", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(t)
}

func DeleteHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := uuid.Parse(id); err != nil {
		http.Error(w, "Invalid testimonial id", http.StatusBadRequest)
		return
	}

	result := db.DB.Delete(&Testimonial{}, "id = ?", id)
	if result.Error != nil {
		http.Error(w, "Failed to delete testimonial", http.StatusInternalServerError)
		return
	}
	if result.RowsAffected == 0 {
		http.Error(w, "Testimonial not found", http.StatusNotFound)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
