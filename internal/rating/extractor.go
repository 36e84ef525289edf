// Package rating contém a extração do snapshot a partir do HTML do ranking e a
// comparação entre snapshots consecutivos.
package rating

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/vfg2006/itmo-rating-bot/internal/domain"
)

type Extractor struct {
	markers Markers
	clock   Clock
}

// NewExtractor cria um extrator; clock nil usa Now (UTC+3)
func NewExtractor(markers Markers, clock Clock) *Extractor {
	if clock == nil {
		clock = Now
	}

	return &Extractor{
		markers: markers.withDefaults(),
		clock:   clock,
	}
}

// entry é uma linha do ranking já classificada
type entry struct {
	applicationID string
	hasContract   bool
	paid          bool
	unpaid        bool
}

// Extract percorre as linhas do ranking uma única vez, na ordem do documento
// (a ordem do documento é a ordem do ranking), acumulando os contadores e as
// posições do ID acompanhado. Documento nil, vazio ou malformado gera um
// snapshot zerado.
func (e *Extractor) Extract(doc *goquery.Document, trackedID string) domain.RatingSnapshot {
	trackedID = strings.TrimSpace(trackedID)

	snapshot := domain.RatingSnapshot{
		TrackedID: trackedID,
		Timestamp: e.clock().In(Location),
	}

	if doc == nil {
		return snapshot
	}

	contractRank := 0
	paidRank := 0
	unpaidRank := 0
	captured := false

	doc.Find("." + e.markers.EntryClass).Each(func(i int, sel *goquery.Selection) {
		item := e.classify(sel)

		snapshot.TotalPeople++

		if item.hasContract {
			snapshot.ContractCount++
			contractRank++

			switch {
			case item.paid:
				snapshot.ContractPaidCount++
				paidRank++
			case item.unpaid:
				snapshot.ContractUnpaidCount++
				unpaidRank++
			}
		}

		// ID duplicado: vale a primeira ocorrência
		if captured || trackedID == "" || item.applicationID != trackedID {
			return
		}
		captured = true

		snapshot.YourPosition = intPtr(i + 1)
		if !item.hasContract {
			return
		}

		snapshot.YourContractPosition = intPtr(contractRank)
		switch {
		case item.paid:
			snapshot.YourPaidPosition = intPtr(paidRank)
		case item.unpaid:
			snapshot.YourUnpaidPosition = intPtr(unpaidRank)
		}
	})

	return snapshot
}

func (e *Extractor) classify(sel *goquery.Selection) entry {
	item := entry{
		applicationID: e.applicationID(sel),
		hasContract:   strings.Contains(sel.Text(), e.markers.ContractMarker),
	}

	if !item.hasContract {
		return item
	}

	// pago tem precedência quando as duas marcações aparecem
	if hasMarker(sel, e.markers.PaidClass) {
		item.paid = true
	} else if hasMarker(sel, e.markers.UnpaidClass) {
		item.unpaid = true
	}

	return item
}

func (e *Extractor) applicationID(sel *goquery.Selection) string {
	span := sel.Find("." + e.markers.PositionClass).First().Find("span").First()
	if span.Length() == 0 {
		return ""
	}

	return strings.TrimSpace(span.Text())
}

// hasMarker procura a classe no próprio container ou em qualquer descendente
func hasMarker(sel *goquery.Selection, class string) bool {
	return sel.HasClass(class) || sel.Find("."+class).Length() > 0
}

func intPtr(v int) *int {
	return &v
}
