package db

// SchemaSQL contains the database schema initialization SQL.
// Field names match the lower-camel-case document schema the rest of the
// system speaks (partNumber, quantityAvailable, ...).
const SchemaSQL = `
    -- ==========================================================================
    -- TECHNICIAN TABLE (reference data, mutated outside this system)
    -- ==========================================================================
    DEFINE TABLE IF NOT EXISTS technician SCHEMAFULL;
    DEFINE FIELD IF NOT EXISTS name ON technician TYPE string;
    DEFINE FIELD IF NOT EXISTS department ON technician TYPE string;
    DEFINE FIELD IF NOT EXISTS skills ON technician TYPE array<string>;
    DEFINE FIELD IF NOT EXISTS isAvailable ON technician TYPE bool DEFAULT true;
    DEFINE FIELD IF NOT EXISTS nextAvailableAt ON technician TYPE option<datetime>;

    DEFINE INDEX IF NOT EXISTS technician_department ON technician FIELDS department;
    DEFINE INDEX IF NOT EXISTS technician_skills ON technician FIELDS skills;

    -- ==========================================================================
    -- PART TABLE
    -- ==========================================================================
    -- version is the optimistic-concurrency token for quantity deduction;
    -- the assert is a backstop, the gateway never issues a write that
    -- would go negative.
    DEFINE TABLE IF NOT EXISTS part SCHEMAFULL;
    DEFINE FIELD IF NOT EXISTS partNumber ON part TYPE string;
    DEFINE FIELD IF NOT EXISTS description ON part TYPE option<string>;
    DEFINE FIELD IF NOT EXISTS quantityAvailable ON part TYPE int DEFAULT 0 ASSERT $value >= 0;
    DEFINE FIELD IF NOT EXISTS category ON part TYPE option<string>;
    DEFINE FIELD IF NOT EXISTS location ON part TYPE option<string>;
    DEFINE FIELD IF NOT EXISTS version ON part TYPE int DEFAULT 0;

    DEFINE INDEX IF NOT EXISTS part_number ON part FIELDS partNumber;
    DEFINE INDEX IF NOT EXISTS part_category ON part FIELDS category;

    -- ==========================================================================
    -- WORK_ORDER TABLE
    -- ==========================================================================
    DEFINE TABLE IF NOT EXISTS work_order SCHEMAFULL;
    DEFINE FIELD IF NOT EXISTS workOrderNumber ON work_order TYPE string;
    DEFINE FIELD IF NOT EXISTS machineId ON work_order TYPE string;
    DEFINE FIELD IF NOT EXISTS title ON work_order TYPE string;
    DEFINE FIELD IF NOT EXISTS description ON work_order TYPE option<string>;
    DEFINE FIELD IF NOT EXISTS type ON work_order TYPE string;
    DEFINE FIELD IF NOT EXISTS priority ON work_order TYPE string DEFAULT 'medium';
    DEFINE FIELD IF NOT EXISTS status ON work_order TYPE string DEFAULT 'open';
    DEFINE FIELD IF NOT EXISTS assignedTo ON work_order TYPE string DEFAULT '';
    DEFINE FIELD IF NOT EXISTS notes ON work_order TYPE option<string>;
    DEFINE FIELD IF NOT EXISTS estimatedDuration ON work_order TYPE option<int>;
    DEFINE FIELD IF NOT EXISTS tasks ON work_order FLEXIBLE TYPE array<object>;
    DEFINE FIELD IF NOT EXISTS partsUsed ON work_order FLEXIBLE TYPE array<object>;
    DEFINE FIELD IF NOT EXISTS createdAt ON work_order TYPE datetime DEFAULT time::now();
    DEFINE FIELD IF NOT EXISTS updatedAt ON work_order TYPE datetime DEFAULT time::now();

    DEFINE INDEX IF NOT EXISTS work_order_status ON work_order FIELDS status;
    DEFINE INDEX IF NOT EXISTS work_order_machine ON work_order FIELDS machineId;
`
