package database

import (
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/floroz/gavel-auctions/internal/domain/auctions"
)

// auctionSelect joins each auction to its seller and to a per-auction
// aggregate of the bid ledger, so the result has exactly one row per auction.
const auctionSelect = `
	SELECT a.id, a.title, a.description, a.reserve, a.category_id, a.seller_id,
	       u.first_name AS seller_first_name, u.last_name AS seller_last_name,
	       a.end_date, a.image_filename, a.created_at,
	       COALESCE(b.num_bids, 0) AS num_bids, b.highest_bid
	FROM auctions a
	JOIN users u ON u.id = a.seller_id
	LEFT JOIN (
		SELECT auction_id, COUNT(*) AS num_bids, MAX(amount) AS highest_bid
		FROM bids
		GROUP BY auction_id
	) b ON b.auction_id = a.id`

// orderClauses is the only source of ORDER BY text; sort input never reaches SQL.
var orderClauses = map[auctions.SortBy]string{
	auctions.SortAlphabeticalAsc:  "a.title ASC",
	auctions.SortAlphabeticalDesc: "a.title DESC",
	auctions.SortClosingSoon:      "a.end_date ASC",
	auctions.SortClosingLast:      "a.end_date DESC",
	auctions.SortBidsAsc:          "num_bids ASC",
	auctions.SortBidsDesc:         "num_bids DESC",
	auctions.SortReserveAsc:       "a.reserve ASC",
	auctions.SortReserveDesc:      "a.reserve DESC",
}

const tieBreak = "a.title ASC, a.id ASC"

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// buildFilter renders the WHERE clause shared by the page and count queries.
func buildFilter(q auctions.SearchQuery) (string, pgx.NamedArgs) {
	var conds []string
	args := pgx.NamedArgs{}

	if q.Q != "" {
		conds = append(conds, "(a.title ILIKE @q OR a.description ILIKE @q)")
		args["q"] = "%" + likeEscaper.Replace(q.Q) + "%"
	}
	if len(q.CategoryIDs) > 0 {
		conds = append(conds, "a.category_id = ANY(@category_ids)")
		args["category_ids"] = q.CategoryIDs
	}
	if q.SellerID != nil {
		conds = append(conds, "a.seller_id = @seller_id")
		args["seller_id"] = *q.SellerID
	}
	if q.BidderID != nil {
		conds = append(conds, "EXISTS (SELECT 1 FROM bids ub WHERE ub.auction_id = a.id AND ub.user_id = @bidder_id)")
		args["bidder_id"] = *q.BidderID
	}

	if len(conds) == 0 {
		return "", args
	}
	return "\n\tWHERE " + strings.Join(conds, "\n\t  AND "), args
}

// buildSearchQuery returns the paged listing query for q.
func buildSearchQuery(q auctions.SearchQuery) (string, pgx.NamedArgs) {
	where, args := buildFilter(q)

	order, ok := orderClauses[q.SortBy]
	if !ok {
		order = orderClauses[auctions.DefaultSort]
	}

	var sb strings.Builder
	sb.WriteString(auctionSelect)
	sb.WriteString(where)
	sb.WriteString("\n\tORDER BY ")
	sb.WriteString(order)
	sb.WriteString(", ")
	sb.WriteString(tieBreak)

	if q.Count != nil {
		sb.WriteString("\n\tLIMIT @limit")
		args["limit"] = *q.Count
	}
	sb.WriteString("\n\tOFFSET @offset")
	args["offset"] = q.StartIndex

	return sb.String(), args
}

// buildCountQuery counts every auction matching q's filters, ignoring paging.
func buildCountQuery(q auctions.SearchQuery) (string, pgx.NamedArgs) {
	where, args := buildFilter(q)
	return "SELECT COUNT(*) FROM auctions a" + where, args
}
