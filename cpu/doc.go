// Package cpu implements the processor and assembler for the Hack computer.
//
// The CPU consists of a program counter indexing a read-only instruction
// memory, two 16-bit registers (A and D), an ALU, and 32K words of data
// memory. Addresses 16384 (SCREEN) and 24576 (KBD) are the conventional
// memory mapped device regions; the CPU treats them as ordinary memory.
//
// Instruction words are either address instructions (bit 15 clear), loading
// a 15-bit value into A, or compute instructions of the form dest=comp;jump.
//
// The assembler translates symbolic Hack assembly into instruction words,
// resolving labels, allocating variables from address 16, and evaluating
// compile-time $(...) expressions.
package cpu
