// Package star reads NMR-STAR files, the format the BMRB uses for NMR data.
//
// NMR-STAR is a cousin of mmCIF. Both are STAR files, but we only want
// the NMR-STAR layout, which is organised into saveframes:
//
//	save_entity_1
//	   _Entity.Sf_category   entity
//	   _Entity.Polymer_seq_one_letter_code
//	;
//	MKTAYIAKQR
//	;
//	   loop_
//	      _Entity_comp_index.ID
//	      _Entity_comp_index.Comp_ID
//	      1  MET
//	      2  LYS
//	   stop_
//	save_
//
// We do not tokenise the whole file. As with mmcif, the first thing on
// a line is decisive: save_, loop_, stop_, a tag starting with "_", or
// data. Everything else is jumped over, including the data_ line and
// comments.
//
// What comes back is an Entry, which maps saveframe names to Saveframes.
// A saveframe has tags (short key, so Sf_category not _Entity.Sf_category)
// and loops (category keeps its underscore, so _Entity_comp_index).
// In the file, tags and loops share a name space. We keep them in two maps,
// so if a tag and a loop have the same key, neither is lost.
//
// Notes about the format...
// A dot, ., means not appropriate or deliberately left out.
// A question mark, ?, means a missing value.
// We do not interpret either. They are just strings.
// Multi-line values between semicolon lines are joined with nothing in
// between. For sequences that is what you want. For free text, words at
// line ends will be glued together.
package star
