package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"pod-portal/internal/model"
)

// azTimeLayout renders the fixed-zone Arizona clock for the dashboard.
const azTimeLayout = "01/02/2006 03:04 PM MST"

const feedLimit = 50

type FeedService struct{ db *gorm.DB }

func NewFeedService(db *gorm.DB) *FeedService { return &FeedService{db: db} }

// LiveDeliveries composes the dashboard snapshot: the newest expected
// deliveries joined at read time against the latest matching POD event
// per reference. Nothing is cached and nothing is written back; the
// stored status column only shows through when no event matches.
func (s *FeedService) LiveDeliveries(ctx context.Context) ([]model.LiveDeliveryEntry, error) {
	var deliveries []model.ExpectedDelivery
	err := s.db.WithContext(ctx).
		Order("id DESC").
		Limit(feedLimit).
		Find(&deliveries).Error
	if err != nil {
		return nil, fmt.Errorf("list expected deliveries: %w", err)
	}

	entries := make([]model.LiveDeliveryEntry, 0, len(deliveries))
	for _, d := range deliveries {
		entry := model.LiveDeliveryEntry{
			ReferenceID: d.ReferenceID,
			Consignee:   d.ConsigneeName,
			Address:     d.DestinationAddress,
			Status:      d.Status,
			LastUpdated: "Pending",
			BatchID:     d.BatchID,
		}

		var ev model.PODEvent
		err := s.db.WithContext(ctx).
			Where("reference_id = ?", d.ReferenceID).
			Order("id DESC").
			First(&ev).Error
		switch {
		case err == nil:
			entry.Status = ev.EventType
			if ev.AZTimestamp != nil {
				entry.LastUpdated = ev.AZTimestamp.In(model.ArizonaTZ).Format(azTimeLayout)
			} else {
				entry.LastUpdated = "N/A"
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			// no event yet, keep seeded status + Pending
		default:
			return nil, fmt.Errorf("latest event for %s: %w", d.ReferenceID, err)
		}

		entries = append(entries, entry)
	}
	return entries, nil
}
