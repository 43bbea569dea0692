// Package compiler wires the translation stages into pipelines.
//
// Process of translation
//
//	Stack Machine Text (.vm) ->
//		front.Parse ->
//	Stack Machine Commands (ir) ->
//		back.Translate ->
//	Assembly Text (.asm) ->
//		asm.Parse ->
//	Assembly Language (asm) ->
//		assemble ->
//	Program Image (.hack)
//
//	Program Image (.hack) ->
//		disasm ->
//	Assembly Text (.asm)
package compiler
