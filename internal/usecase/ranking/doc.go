// Package ranking scores candidate brands against a brand's anchor categories.
//
// Each ranking mode is a self-contained Ranker built from a Strategy value:
//
//	RAW       one point per product sharing any anchor category
//	WEIGHTED  per shared anchor category, 1/ln(1+total products in category)
//	KOFN      number of distinct anchor categories shared, kept only at or
//	          above a minimum match count
//
// Every ranker drops products without a brand and the excluded brand before
// scoring, returns nothing for an empty anchor list without querying, and
// orders results by descending score keeping first-encountered order on ties.
package ranking
