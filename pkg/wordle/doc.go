// Package wordle holds the records shared by every stage of a shape word
// cloud layout: regions and their anchor points, the word arena, the region
// mask, layout options and the final render records.
//
// The stages themselves live in subpackages and run in this order:
//
//  1. [distfield]: smooth each region's distance field and extract anchors
//  2. [alloc]: split the keyword budget across regions and anchors
//  3. [fontscale]: search the largest font size the regions can hold
//  4. [place]: place keywords inside their regions
//  5. [fill]: pack filling words around the keywords
//
// Every random decision draws from one generator created by [NewRNG], so a
// fixed seed reproduces a layout exactly.
package wordle
