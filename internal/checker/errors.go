package checker

// ErrorKind is the stable, closed set of checker diagnostic kinds (spec.md
// §6 "Error kinds (stable set)").
type ErrorKind int

const (
	NameAlreadyInUse ErrorKind = iota
	VoidType
	TypeDoesNotMatch
	UnexpectedType
	NoSuchFunction
	NoSuchType
	NoSuchVariable
	NoSuchTemplate
	NoSuchMemberVariable
	NoSuchMemberFunction
	CannotRefARef
	CannotPtrARef
	CannotHaveMultiType
	ExpectingType
	ExpectingNumber
	ExpectedIdentifier
	CannotHaveBreakHere
	CannotHaveContinueHere
	NotAVariable
	NotAFunction
	NotATemplate
	NotAStruct
	WrongNumberOfArgs
	CannotBeConvertedToBool
	CannotDereferenceNonPointerType
	CannotOperateOnTemporary
	CannotAssignToTemporary
	CannotAssign
	IncorrectReturnType
	NotAllCodePathsReturn
	EmptyStruct
	StructCycle
	OperationNotDefined
	OperationOnVoid
	CannotCompareType
)

var errorKindNames = map[ErrorKind]string{
	NameAlreadyInUse:                 "NameAlreadyInUse",
	VoidType:                         "VoidType",
	TypeDoesNotMatch:                 "TypeDoesNotMatch",
	UnexpectedType:                   "UnexpectedType",
	NoSuchFunction:                   "NoSuchFunction",
	NoSuchType:                       "NoSuchType",
	NoSuchVariable:                   "NoSuchVariable",
	NoSuchTemplate:                   "NoSuchTemplate",
	NoSuchMemberVariable:             "NoSuchMemberVariable",
	NoSuchMemberFunction:             "NoSuchMemberFunction",
	CannotRefARef:                    "CannotRefARef",
	CannotPtrARef:                    "CannotPtrARef",
	CannotHaveMultiType:              "CannotHaveMultiType",
	ExpectingType:                    "ExpectingType",
	ExpectingNumber:                  "ExpectingNumber",
	ExpectedIdentifier:               "ExpectedIdentifier",
	CannotHaveBreakHere:              "CannotHaveBreakHere",
	CannotHaveContinueHere:           "CannotHaveContinueHere",
	NotAVariable:                     "NotAVariable",
	NotAFunction:                     "NotAFunction",
	NotATemplate:                     "NotATemplate",
	NotAStruct:                       "NotAStruct",
	WrongNumberOfArgs:                "WrongNumberOfArgs",
	CannotBeConvertedToBool:          "CannotBeConvertedToBool",
	CannotDereferenceNonPointerType:  "CannotDereferenceNonPointerType",
	CannotOperateOnTemporary:         "CannotOperateOnTemporary",
	CannotAssignToTemporary:          "CannotAssignToTemporary",
	CannotAssign:                     "CannotAssign",
	IncorrectReturnType:              "IncorrectReturnType",
	NotAllCodePathsReturn:            "NotAllCodePathsReturn",
	EmptyStruct:                      "EmptyStruct",
	StructCycle:                      "StructCycle",
	OperationNotDefined:              "OperationNotDefined",
	OperationOnVoid:                  "OperationOnVoid",
	CannotCompareType:                "CannotCompareType",
}

func (k ErrorKind) String() string {
	if name, ok := errorKindNames[k]; ok {
		return name
	}
	return "UnknownErrorKind"
}
