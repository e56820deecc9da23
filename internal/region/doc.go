// Package region provides byte ranges for allocators to partition.
//
// Map hands out page-aligned anonymous mappings on unix systems and plain
// heap slices elsewhere. The caller owns the range and must release it with
// the returned cleanup once nothing allocated from it is in use.
package region
